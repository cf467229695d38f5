package frame

import (
	"github.com/VitaminC1989/pptxtojson-go/internal/geometry"
	"github.com/VitaminC1989/pptxtojson-go/internal/model"
	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

// DispatchFunc lets diagram.go hand its (already dsp:->p: rewritten)
// drawing tree back to the node dispatcher without frame importing
// internal/dispatch. The orchestrator supplies it, just as it hands Route
// to dispatch as its FrameHandler.
type DispatchFunc func(spTree *xmlutil.Node) []model.Element

// BuildDiagram implements spec §4.9's diagram handler: iterate
// warp.diagramContent/p:drawing/p:spTree through the ordinary shape
// dispatcher (with source "diagram") and wrap the result in a diagram
// element positioned at the graphicFrame's own box.
func BuildDiagram(graphicFrame, diagramContent *xmlutil.Node, dispatchFn DispatchFunc) model.Element {
	xfrm := xmlutil.FirstChild(graphicFrame, "xfrm")
	rect := geometry.Resolve(xfrm)

	spTree := xmlutil.Lookup(diagramContent, "drawing", "spTree")
	var elements []model.Element
	if spTree != nil && dispatchFn != nil {
		elements = dispatchFn(spTree)
	}

	return model.Element{
		Type: model.TypeDiagram,
		Left: rect.Left, Top: rect.Top, Width: rect.Width, Height: rect.Height,
		Elements: elements,
	}
}
