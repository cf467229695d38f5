package frame

import (
	"github.com/VitaminC1989/pptxtojson-go/internal/geometry"
	"github.com/VitaminC1989/pptxtojson-go/internal/model"
	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

// ChartPart resolves a chart relationship id to its parsed chartN.xml
// tree — a collaborator the caller supplies since the chart part lives
// outside the slide's own rels (it's reached via slideResObj, which only
// the orchestrator has loaded).
type ChartPart func(rID string) (*xmlutil.Node, bool)

// ChartInfo is the subset of a resolved chart's data §3 asks for. It is
// intentionally loose (Data is an opaque series payload) — spec §6 leaves
// getChartInfo's internals collaborator-defined, and chart series shapes
// vary enough by chart type that a single fixed struct would either be
// incomplete or mostly-empty for any given chart.
type ChartInfo struct {
	ChartType string
	Data      interface{}
	Marker    bool
	BarDir    string
	HoleSize  float64
	Grouping  string
	Style     string
}

// chartTypeTags are the c:plotArea children that identify a chart's kind;
// order matters only in that a plotArea with several (e.g. a combo chart)
// reports the first one found, matching how most consumers only render a
// single series kind per frame.
var chartTypeTags = []string{
	"barChart", "bar3DChart", "lineChart", "line3DChart", "pieChart", "pie3DChart",
	"doughnutChart", "areaChart", "area3DChart", "scatterChart", "radarChart", "bubbleChart",
}

// GetChartInfo walks c:chartSpace/c:chart/c:plotArea and extracts the
// chart type, grouping, barDir, marker, holeSize, and per-series data.
// Style is not read and stays empty.
func GetChartInfo(plotArea *xmlutil.Node) ChartInfo {
	info := ChartInfo{}
	var chartNode *xmlutil.Node
	for _, tag := range chartTypeTags {
		if n := xmlutil.FirstChild(plotArea, tag); n != nil {
			chartNode = n
			info.ChartType = tag
			break
		}
	}
	if chartNode == nil {
		return info
	}
	if grouping := xmlutil.FirstChild(chartNode, "grouping"); grouping != nil {
		info.Grouping = xmlutil.Attr(grouping, "val")
	}
	if barDir := xmlutil.FirstChild(chartNode, "barDir"); barDir != nil {
		info.BarDir = xmlutil.Attr(barDir, "val")
	}
	if marker := xmlutil.FirstChild(chartNode, "marker"); marker != nil {
		info.Marker = xmlutil.Attr(marker, "val") != "0"
	}
	if holeSize := xmlutil.FirstChild(chartNode, "holeSize"); holeSize != nil {
		if v, ok := xmlutil.PercentVal(xmlutil.Attr(holeSize, "val")); ok {
			info.HoleSize = v
		}
	}

	var series []map[string]interface{}
	for _, ser := range xmlutil.Children(chartNode, "ser") {
		series = append(series, extractSeries(ser))
	}
	info.Data = series
	return info
}

func extractSeries(ser *xmlutil.Node) map[string]interface{} {
	out := map[string]interface{}{}
	if tx := xmlutil.Lookup(ser, "tx", "strRef", "strCache"); tx != nil {
		if pt := xmlutil.FirstChild(tx, "pt"); pt != nil {
			if v := xmlutil.FirstChild(pt, "v"); v != nil {
				out["name"] = v.Text
			}
		}
	}
	var categories, values []string
	if cat := xmlutil.Lookup(ser, "cat"); cat != nil {
		categories = cachedValues(cat)
	}
	if val := xmlutil.Lookup(ser, "val"); val != nil {
		values = cachedValues(val)
	}
	out["categories"] = categories
	out["values"] = values
	return out
}

// cachedValues reads every a:pt/a:v under a c:numCache or c:strCache,
// wherever it sits beneath ref (ref is c:cat or c:val).
func cachedValues(ref *xmlutil.Node) []string {
	var out []string
	for _, cache := range []*xmlutil.Node{
		xmlutil.FirstChild(ref, "numCache"),
		xmlutil.FirstChild(ref, "strCache"),
		xmlutil.Lookup(ref, "numRef", "numCache"),
		xmlutil.Lookup(ref, "strRef", "strCache"),
	} {
		if cache == nil {
			continue
		}
		for _, pt := range xmlutil.Children(cache, "pt") {
			if v := xmlutil.FirstChild(pt, "v"); v != nil {
				out = append(out, v.Text)
			}
		}
	}
	return out
}

// BuildChart implements spec §4.9's chart handler: dereference the
// c:chart relationship, delegate to GetChartInfo, and wrap it at the
// graphicFrame's position.
func BuildChart(graphicFrame *xmlutil.Node, chartSpace *xmlutil.Node) model.Element {
	xfrm := xmlutil.FirstChild(graphicFrame, "xfrm")
	rect := geometry.Resolve(xfrm)

	plotArea := xmlutil.Lookup(chartSpace, "chart", "plotArea")
	info := GetChartInfo(plotArea)

	return model.Element{
		Type: model.TypeChart,
		Left: rect.Left, Top: rect.Top, Width: rect.Width, Height: rect.Height,
		ChartType: info.ChartType,
		Data:      info.Data,
		Marker:    info.Marker,
		BarDir:    info.BarDir,
		HoleSize:  info.HoleSize,
		Grouping:  info.Grouping,
		Style:     info.Style,
	}
}
