package frame

import (
	"strconv"

	"github.com/VitaminC1989/pptxtojson-go/internal/colorengine"
	"github.com/VitaminC1989/pptxtojson-go/internal/geometry"
	"github.com/VitaminC1989/pptxtojson-go/internal/model"
	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

// tablePosition records which banding/edge slots a cell occupies, per
// spec §4.9's isFrstRow/isLstRow/isFrstCol/isLstCol/isBandRow/isBandCol
// toggles plus the four corner slots.
type tablePosition struct {
	row, col         int
	rows, cols       int
	firstRow, lastRow bool
	firstCol, lastCol bool
}

// styleSlot picks the tableStyles.xml child element name a cell's
// position resolves to, most-specific first: a corner slot when two edge
// flags combine, else a single edge slot, else row/column banding, else
// the whole-table default.
func (p tablePosition) styleSlot(tblPr *xmlutil.Node) string {
	frstRow := xmlutil.Attr(tblPr, "firstRow") == "1"
	lstRow := xmlutil.Attr(tblPr, "lastRow") == "1"
	frstCol := xmlutil.Attr(tblPr, "firstCol") == "1"
	lstCol := xmlutil.Attr(tblPr, "lastCol") == "1"
	bandRow := xmlutil.Attr(tblPr, "bandRow") == "1"
	bandCol := xmlutil.Attr(tblPr, "bandCol") == "1"

	atFirstRow := frstRow && p.row == 0
	atLastRow := lstRow && p.row == p.rows-1
	atFirstCol := frstCol && p.col == 0
	atLastCol := lstCol && p.col == p.cols-1

	switch {
	case atFirstRow && atFirstCol:
		return "nwCell"
	case atFirstRow && atLastCol:
		return "neCell"
	case atLastRow && atFirstCol:
		return "swCell"
	case atLastRow && atLastCol:
		return "seCell"
	case atFirstRow:
		return "firstRow"
	case atLastRow:
		return "lastRow"
	case atFirstCol:
		return "firstCol"
	case atLastCol:
		return "lastCol"
	}
	if bandRow {
		bandIdx := p.row
		if frstRow {
			bandIdx--
		}
		if bandIdx >= 0 && bandIdx%2 == 1 {
			return "band2H"
		}
		if bandIdx >= 0 {
			return "band1H"
		}
	}
	if bandCol {
		bandIdx := p.col
		if frstCol {
			bandIdx--
		}
		if bandIdx >= 0 && bandIdx%2 == 1 {
			return "band2V"
		}
		if bandIdx >= 0 {
			return "band1V"
		}
	}
	return "wholeTbl"
}

// resolveStyleFillFont reads the named slot's tcStyle/fill and
// tcTxStyle/b out of the selected a:tableStyle entry.
func resolveStyleFillFont(tableStyle *xmlutil.Node, slot string, ctx colorengine.SchemeContext) (fillColor, fontColor string, bold bool) {
	slotNode := xmlutil.FirstChild(tableStyle, slot)
	if slotNode == nil {
		return "", "", false
	}
	if tcStyle := xmlutil.FirstChild(slotNode, "tcStyle"); tcStyle != nil {
		if fill := xmlutil.FirstChild(tcStyle, "fill"); fill != nil {
			if solidFill := xmlutil.FirstChild(fill, "solidFill"); solidFill != nil {
				if c, ok := colorengine.DecodeColor(solidFill, ctx); ok {
					fillColor = c.String()
				}
			}
		}
	}
	if tcTxStyle := xmlutil.FirstChild(slotNode, "tcTxStyle"); tcTxStyle != nil {
		bold = xmlutil.Attr(tcTxStyle, "b") == "on"
		if solidFill := xmlutil.FirstChild(tcTxStyle, "solidFill"); solidFill != nil {
			if c, ok := colorengine.DecodeColor(solidFill, ctx); ok {
				fontColor = c.String()
			}
		}
	}
	return fillColor, fontColor, bold
}

// findTableStyle locates the a:tblStyle entry matching styleId among
// tableStyles.xml's root a:tblStyle children.
func findTableStyle(tableStyles *xmlutil.Node, styleID string) *xmlutil.Node {
	for _, ts := range xmlutil.Children(tableStyles, "tblStyle") {
		if xmlutil.Attr(ts, "styleId") == styleID {
			return ts
		}
	}
	return nil
}

// BuildTable implements spec §4.9's table handler: a:tbl -> row-major
// cell matrix, gridSpan/rowSpan merges, and per-cell style resolution
// from the referenced tableStyles.xml entry.
func BuildTable(graphicFrame, tbl *xmlutil.Node, tableStyles *xmlutil.Node, ctx colorengine.SchemeContext) model.Element {
	xfrm := xmlutil.Lookup(graphicFrame, "xfrm")
	rect := geometry.Resolve(xfrm)

	tblPr := xmlutil.FirstChild(tbl, "tblPr")
	var tableStyle *xmlutil.Node
	if tblPr != nil {
		if styleID := xmlutil.FirstChild(tblPr, "tableStyleId"); styleID != nil {
			tableStyle = findTableStyle(tableStyles, styleID.Text)
		}
	}

	rows := xmlutil.Children(tbl, "tr")
	numCols := 0
	if len(rows) > 0 {
		for _, tc := range xmlutil.Children(rows[0], "tc") {
			span := 1
			if s, err := strconv.Atoi(xmlutil.Attr(tc, "gridSpan")); err == nil && s > 0 {
				span = s
			}
			numCols += span
		}
	}

	data := make([][]model.TableCell, len(rows))
	for ri, tr := range rows {
		var rowCells []model.TableCell
		for _, tc := range xmlutil.Children(tr, "tc") {
			cell := model.TableCell{}
			if txBody := xmlutil.FirstChild(tc, "txBody"); txBody != nil {
				cell.Text = plainText(txBody)
			}
			if span, err := strconv.Atoi(xmlutil.Attr(tc, "gridSpan")); err == nil && span > 1 {
				cell.ColSpan = span
			}
			if span, err := strconv.Atoi(xmlutil.Attr(tc, "rowSpan")); err == nil && span > 1 {
				cell.RowSpan = span
			}
			cell.HMerge = xmlutil.Attr(tc, "hMerge") == "1"
			cell.VMerge = xmlutil.Attr(tc, "vMerge") == "1"

			if tableStyle != nil {
				pos := tablePosition{row: ri, col: len(rowCells), rows: len(rows), cols: numCols}
				slot := pos.styleSlot(tblPr)
				fill, font, bold := resolveStyleFillFont(tableStyle, slot, ctx)
				if cell.FillColor == "" {
					cell.FillColor = fill
				}
				if font != "" {
					cell.FontColor = font
				}
				cell.FontBold = bold
			}
			if tcPr := xmlutil.FirstChild(tc, "tcPr"); tcPr != nil {
				if solidFill := xmlutil.FirstChild(tcPr, "solidFill"); solidFill != nil {
					if c, ok := colorengine.DecodeColor(solidFill, ctx); ok {
						cell.FillColor = c.String() // explicit per-cell fill wins over style-derived fill.
					}
				}
			}
			rowCells = append(rowCells, cell)
		}
		data[ri] = rowCells
	}

	return model.Element{
		Type: model.TypeTable,
		Left: rect.Left, Top: rect.Top, Width: rect.Width, Height: rect.Height,
		Data: data,
	}
}

func plainText(txBody *xmlutil.Node) string {
	var out string
	for _, p := range xmlutil.Children(txBody, "p") {
		for _, r := range xmlutil.Children(p, "r") {
			if t := xmlutil.FirstChild(r, "t"); t != nil {
				out += t.Text
			}
		}
	}
	return out
}
