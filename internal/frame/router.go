// Package frame implements the Graphic Frame Handlers (spec.md §4.9):
// routes a p:graphicFrame by its a:graphicData/@uri to the table, chart,
// or diagram builder, or drops it silently for an OLE object (spec §9:
// "intentionally unimplemented").
package frame

import (
	"strings"

	"github.com/VitaminC1989/pptxtojson-go/internal/colorengine"
	"github.com/VitaminC1989/pptxtojson-go/internal/model"
	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

const (
	uriTable   = "drawingml/2006/table"
	uriChart   = "drawingml/2006/chart"
	uriDiagram = "drawingml/2006/diagram"
)

// Deps bundles the per-slide collaborators Route needs beyond the
// graphicFrame node itself: the table-style registry, a way to fetch a
// chart part by relationship id, the slide's diagram drawing tree (if
// any), and a callback to re-enter the node dispatcher for a diagram's
// own shape tree.
type Deps struct {
	TableStyles    *xmlutil.Node
	Scheme         colorengine.SchemeContext
	FetchChartPart ChartPart
	DiagramContent *xmlutil.Node
	Dispatch       DispatchFunc
}

// Route implements spec §4.9's routing table. ok is false for an
// unrecognized or OLE graphicData uri, matching the "currently emits
// nothing" contract.
func Route(graphicFrame *xmlutil.Node, deps Deps) (model.Element, bool) {
	graphicData := xmlutil.Lookup(graphicFrame, "graphic", "graphicData")
	uri := xmlutil.Attr(graphicData, "uri")

	switch {
	case strings.Contains(uri, uriTable):
		tbl := xmlutil.FirstChild(graphicData, "tbl")
		if tbl == nil {
			return model.Element{}, false
		}
		return BuildTable(graphicFrame, tbl, deps.TableStyles, deps.Scheme), true

	case strings.Contains(uri, uriChart):
		chartRel := xmlutil.FirstChild(graphicData, "chart")
		if chartRel == nil || deps.FetchChartPart == nil {
			return model.Element{}, false
		}
		rID := xmlutil.Attr(chartRel, "id")
		chartSpace, ok := deps.FetchChartPart(rID)
		if !ok {
			return model.Element{}, false
		}
		return BuildChart(graphicFrame, chartSpace), true

	case strings.Contains(uri, uriDiagram):
		if deps.DiagramContent == nil {
			return model.Element{}, false
		}
		return BuildDiagram(graphicFrame, deps.DiagramContent, deps.Dispatch), true

	default: // presentationml/2006/ole and anything else: no output.
		return model.Element{}, false
	}
}
