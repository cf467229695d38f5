// Package pptxtojson resolves a PresentationML (.pptx) package into a
// self-contained, renderer-agnostic JSON-friendly description of every
// slide: its background, and every shape/text/image/video/audio/table/
// chart/diagram/group it contains, with the slide -> layout -> master ->
// theme inheritance chain and color algebra fully applied.
package pptxtojson

import (
	"fmt"
	"io"

	"github.com/VitaminC1989/pptxtojson-go/internal/model"
	"github.com/VitaminC1989/pptxtojson-go/internal/orchestrate"
	"github.com/VitaminC1989/pptxtojson-go/internal/resource"
)

// Process opens r (a .pptx ZIP container of size bytes) and resolves it
// into an Output. A malformed package (unreadable Content Types, missing
// presentation part, no theme relationship) is a fatal error; anything
// narrower (a dangling relationship, an unrecognized enum, an
// unextractable media part) recovers silently with the fallback values
// spec.md §7 documents for that case.
func Process(r io.ReaderAt, size int64, opts Options) (*Output, error) {
	ar, err := resource.OpenZip(r, size)
	if err != nil {
		return nil, err
	}
	if opts.MaxZipEntrySize > 0 {
		ar.MaxEntrySize = opts.MaxZipEntrySize
	}

	pkg, err := resource.LoadPackage(ar)
	if err != nil {
		return nil, err
	}
	if len(pkg.SlidePaths) == 0 {
		return nil, ErrNoSlides
	}

	orchOpts := orchestrate.Options{ResolvePlaceholderText: opts.ResolvePlaceholderText}

	out := &Output{
		Size:   model.Size{Width: pkg.SlideWidth, Height: pkg.SlideHeight},
		Slides: make([]model.Slide, 0, len(pkg.SlidePaths)),
	}

	for _, slidePath := range pkg.SlidePaths {
		wc, err := resource.LoadSlide(ar, slidePath, pkg)
		if err != nil {
			return nil, fmt.Errorf("pptxtojson: %s: %w", slidePath, err)
		}
		slide := orchestrate.ResolveSlide(wc, orchOpts)
		slide.Notes = orchestrate.ResolveNotes(ar, wc.SlideResObj)
		out.Slides = append(out.Slides, slide)
	}

	return out, nil
}
