// Package orchestrate implements the Slide Orchestrator (spec.md §4.10):
// wires the color engine, fill resolver, inheritance indexer, node
// dispatcher, and graphic-frame router together into a single per-slide
// resolution pass.
package orchestrate

import (
	"strings"

	"github.com/VitaminC1989/pptxtojson-go/internal/collab"
	"github.com/VitaminC1989/pptxtojson-go/internal/colorengine"
	"github.com/VitaminC1989/pptxtojson-go/internal/dispatch"
	"github.com/VitaminC1989/pptxtojson-go/internal/fillresolve"
	"github.com/VitaminC1989/pptxtojson-go/internal/frame"
	"github.com/VitaminC1989/pptxtojson-go/internal/inherit"
	"github.com/VitaminC1989/pptxtojson-go/internal/model"
	"github.com/VitaminC1989/pptxtojson-go/internal/resource"
	"github.com/VitaminC1989/pptxtojson-go/internal/shapebuild"
	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

// Options mirrors the public package's Options without importing it
// (importing the root package from an internal one would cycle).
type Options struct {
	ResolvePlaceholderText bool
}

// imageResolver dereferences a relationship id against relMap + the
// archive, memoizing through cache. A .xml target (a vector fill
// placeholder, which spec §4.3 explicitly leaves unsupported) or a
// missing relationship both recover silently with ok=false.
func imageResolver(ar resource.Archive, relMap resource.RelMap, cache map[string]string) fillresolve.ImageFetcher {
	return func(rID string) (string, bool) {
		rel, ok := relMap[rID]
		if !ok {
			return "", false
		}
		if strings.HasSuffix(rel.Target, ".xml") {
			return "", false
		}
		if url, ok := cache[rel.Target]; ok {
			return url, true
		}
		data, err := ar.Read(rel.Target)
		if err != nil {
			return "", false
		}
		url := xmlutil.DataURL(rel.Target, data)
		cache[rel.Target] = url
		return url, true
	}
}

func schemeContext(wc *resource.WarpContext) colorengine.SchemeContext {
	return colorengine.SchemeContext{
		Scheme: resource.ThemeScheme(wc.ThemeContent),
		ClrMap: resource.ResolveClrMap(wc.SlideContent, wc.SlideLayoutContent, wc.SlideMasterContent),
	}
}

// mediaLinkResolver resolves a videoFile/audioFile r:link id against
// relMap, reporting both its target and whether that target is an
// externally-linked URL (TargetMode="External") rather than a
// package-internal media part.
func mediaLinkResolver(relMap resource.RelMap) dispatch.MediaLink {
	return func(rID string) (string, bool, bool) {
		rel, ok := relMap[rID]
		if !ok {
			return "", false, false
		}
		return rel.Target, rel.External, true
	}
}

// linkResolver resolves an a:hlinkClick r:id against relMap into the href
// GenTextBody embeds in its emitted <a> tag (spec's supplemented
// Hyperlinks feature). A relationship target marked TargetMode="External"
// is already the literal URL; others (e.g. an in-package slide jump) are
// used as-is too, since there is no renderer-agnostic equivalent to
// resolve them against.
func linkResolver(relMap resource.RelMap) collab.LinkResolver {
	return func(rID string) (string, bool) {
		rel, ok := relMap[rID]
		if !ok {
			return "", false
		}
		return rel.Target, true
	}
}

func spTreeOf(content *xmlutil.Node) *xmlutil.Node {
	return xmlutil.Lookup(content, "cSld", "spTree")
}

func bgOf(content *xmlutil.Node) *xmlutil.Node {
	return xmlutil.Lookup(content, "cSld", "bg")
}

// ResolveSlide runs the full dispatcher pipeline for one slide, producing
// its background fill and flattened element list.
func ResolveSlide(wc *resource.WarpContext, opts Options) model.Slide {
	ctx := schemeContext(wc)

	layoutIdx := inherit.Build(spTreeOf(wc.SlideLayoutContent))
	masterIdx := inherit.Build(spTreeOf(wc.SlideMasterContent))

	fetchSlide := imageResolver(wc.Archive, wc.SlideResObj, wc.ImageCache)

	var fetchChartPart frame.ChartPart = func(rID string) (*xmlutil.Node, bool) {
		rel, ok := wc.SlideResObj[rID]
		if !ok {
			return nil, false
		}
		data, err := wc.Archive.Read(rel.Target)
		if err != nil {
			return nil, false
		}
		tree, err := xmlutil.Parse(strings.NewReader(string(data)))
		if err != nil {
			return nil, false
		}
		return tree, true
	}

	shapeOpts := shapebuild.Options{ResolvePlaceholderText: opts.ResolvePlaceholderText}

	diagramDispatch := func(spTree *xmlutil.Node) []model.Element {
		diagCtx := dispatch.Context{
			Scheme:       ctx,
			LayoutIndex:  layoutIdx,
			MasterIndex:  masterIdx,
			FetchImage:   imageResolver(wc.Archive, wc.DiagramResObj, wc.ImageCache),
			ResolveMedia: mediaLinkResolver(wc.DiagramResObj),
			ResolveLink:  linkResolver(wc.DiagramResObj),
			Options:      shapeOpts,
			Source:       "diagram",
		}
		return dispatch.Dispatch(spTree, diagCtx)
	}

	dctx := dispatch.Context{
		Scheme:       ctx,
		LayoutIndex:  layoutIdx,
		MasterIndex:  masterIdx,
		FetchImage:   fetchSlide,
		ResolveMedia: mediaLinkResolver(wc.SlideResObj),
		ResolveLink:  linkResolver(wc.SlideResObj),
		Options:      shapeOpts,
		Source:       "slide",
	}
	dctx.FrameHandler = func(gf *xmlutil.Node, c dispatch.Context) (model.Element, bool) {
		return frame.Route(gf, frame.Deps{
			TableStyles:    wc.TableStyles,
			Scheme:         ctx,
			FetchChartPart: fetchChartPart,
			DiagramContent: wc.DiagramContent,
			Dispatch:       diagramDispatch,
		})
	}

	elements := dispatch.Dispatch(spTreeOf(wc.SlideContent), dctx)

	sources := []fillresolve.BgSource{
		{Bg: bgOf(wc.SlideContent), Fetch: fetchSlide},
		{Bg: bgOf(wc.SlideLayoutContent), Fetch: imageResolver(wc.Archive, wc.LayoutResObj, wc.ImageCache)},
		{Bg: bgOf(wc.SlideMasterContent), Fetch: imageResolver(wc.Archive, wc.MasterResObj, wc.ImageCache)},
	}
	bg := fillresolve.ResolveBackgroundFill(sources, ctx)

	fill := model.Fill{Type: model.FillType(bg.Type), Value: bg.Value}
	if g, ok := bg.Value.(fillresolve.Gradient); ok {
		stops := make([]model.GradientStop, len(g.Colors))
		for i, s := range g.Colors {
			stops[i] = model.GradientStop{Pos: s.Pos, Color: s.Color}
		}
		fill.Value = model.Gradient{Rot: g.Rot, Colors: stops}
	}

	return model.Slide{Fill: fill, Elements: elements}
}

// ResolveNotes extracts the speaker-notes text for a slide, given its
// notesSlide relationship (spec's supplemented speaker-notes feature — a
// slide without one simply has no notes).
func ResolveNotes(ar resource.Archive, slideResObj resource.RelMap) string {
	rel, ok := slideResObj.FindByTypeSuffix("notesSlide")
	if !ok {
		return ""
	}
	data, err := ar.Read(rel.Target)
	if err != nil {
		return ""
	}
	tree, err := xmlutil.Parse(strings.NewReader(string(data)))
	if err != nil {
		return ""
	}
	spTree := spTreeOf(tree)
	var b strings.Builder
	for _, sp := range xmlutil.Children(spTree, "sp") {
		txBody := xmlutil.FirstChild(sp, "txBody")
		for _, p := range xmlutil.Children(txBody, "p") {
			for _, r := range xmlutil.Children(p, "r") {
				if t := xmlutil.FirstChild(r, "t"); t != nil {
					b.WriteString(t.Text)
				}
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
