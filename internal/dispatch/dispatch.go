// Package dispatch implements the Node Dispatcher (spec.md §4.7): walks a
// p:spTree's children in document order and routes each to the handler
// its tag implies, tolerating the handful of non-visual wrapper tags that
// carry no element of their own.
package dispatch

import (
	"github.com/VitaminC1989/pptxtojson-go/internal/collab"
	"github.com/VitaminC1989/pptxtojson-go/internal/colorengine"
	"github.com/VitaminC1989/pptxtojson-go/internal/fillresolve"
	"github.com/VitaminC1989/pptxtojson-go/internal/geometry"
	"github.com/VitaminC1989/pptxtojson-go/internal/inherit"
	"github.com/VitaminC1989/pptxtojson-go/internal/model"
	"github.com/VitaminC1989/pptxtojson-go/internal/shapebuild"
	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

// FrameHandler resolves a p:graphicFrame node into an Element, routing by
// its a:graphicData/@uri (table/chart/diagram per spec §4.9). It is
// supplied by the orchestrator, which owns the table/chart/diagram
// collaborators dispatch itself doesn't depend on — this keeps
// internal/frame from needing to import internal/dispatch back.
type FrameHandler func(graphicFrame *xmlutil.Node, c Context) (model.Element, bool)

// MediaLink resolves a videoFile/audioFile r:link relationship id to its
// target and whether that target is an externally-linked URL
// (TargetMode="External") rather than a package-internal media part.
type MediaLink func(rID string) (target string, external bool, ok bool)

// Context carries everything a dispatch pass needs to resolve one
// scope's worth of shapes: the slide/layout/master placeholder chain
// (layout/master indices), the active color scheme, an image fetcher
// bound to the right *ResObj map for this scope, and the frame handler.
type Context struct {
	Scheme       colorengine.SchemeContext
	LayoutIndex  *inherit.Index
	MasterIndex  *inherit.Index
	FetchImage   fillresolve.ImageFetcher
	ResolveMedia MediaLink
	ResolveLink  collab.LinkResolver
	FrameHandler FrameHandler
	Options      shapebuild.Options
	// Source records which scope this dispatch pass is walking ("slide" or
	// "diagram"), feeding shapebuild's type-fallback rule (spec §4.8 step 1).
	Source string
}

// Dispatch walks spTree's direct children per the spec §4.7 table,
// returning the Elements produced in document order.
func Dispatch(spTree *xmlutil.Node, c Context) []model.Element {
	if spTree == nil {
		return nil
	}
	var out []model.Element
	for _, child := range spTree.Children {
		if el, ok := dispatchOne(child, c); ok {
			out = append(out, el)
		}
	}
	return out
}

func dispatchOne(node *xmlutil.Node, c Context) (model.Element, bool) {
	switch node.Name {
	case "sp", "cxnSp":
		chain := shapebuild.Chain{
			Slide:  node,
			Layout: c.LayoutIndex.Lookup(shapebuild.ReadPlaceholder(node).Idx, shapebuild.ReadPlaceholder(node).Type),
			Master: c.MasterIndex.Lookup(shapebuild.ReadPlaceholder(node).Idx, shapebuild.ReadPlaceholder(node).Type),
		}
		return shapebuild.Build(chain, c.Scheme, c.LayoutIndex, c.MasterIndex, c.Source, c.ResolveLink, c.Options), true
	case "pic":
		return buildPicture(node, c)
	case "graphicFrame":
		if c.FrameHandler == nil {
			return model.Element{}, false
		}
		return c.FrameHandler(node, c)
	case "grpSp":
		return buildGroup(node, c), true
	case "AlternateContent":
		if fallback := xmlutil.FirstChild(node, "Fallback"); fallback != nil {
			return buildGroup(fallback, c), true
		}
		return model.Element{}, false
	default: // nvGrpSpPr, grpSpPr, and anything else carries no element.
		return model.Element{}, false
	}
}

func buildGroup(grpSp *xmlutil.Node, c Context) model.Element {
	grpSpPr := xmlutil.FirstChild(grpSp, "grpSpPr")
	gf := geometry.NewGroupFrame(xmlutil.FirstChild(grpSpPr, "xfrm"))

	children := Dispatch(grpSp, c)
	for i := range children {
		children[i] = remapElement(children[i], gf)
	}

	rect := geometry.Resolve(xmlutil.FirstChild(grpSpPr, "xfrm"))
	return model.Element{
		Type:     model.TypeGroup,
		Left:     gf.OffX,
		Top:      gf.OffY,
		Width:    gf.ExtX,
		Height:   gf.ExtY,
		Rotate:   rect.Rotate,
		Elements: children,
	}
}

func remapElement(el model.Element, gf geometry.GroupFrame) model.Element {
	child := geometry.Rect{Left: el.Left, Top: el.Top, Width: el.Width, Height: el.Height}
	remapped := gf.Remap(child)
	el.Left, el.Top, el.Width, el.Height = remapped.Left, remapped.Top, remapped.Width, remapped.Height
	return el
}
