package collab

import (
	"math"
	"strconv"

	"github.com/VitaminC1989/pptxtojson-go/internal/colorengine"
	"github.com/VitaminC1989/pptxtojson-go/internal/model"
	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

// GetBorder decodes a shape's p:spPr/a:ln node into a Border record. A
// missing a:ln, or one carrying a:noFill, yields nil (no border drawn).
func GetBorder(spPr *xmlutil.Node, ctx colorengine.SchemeContext) *model.Border {
	ln := xmlutil.FirstChild(spPr, "ln")
	if ln == nil || xmlutil.HasChild(ln, "noFill") {
		return nil
	}
	color := ""
	if solidFill := xmlutil.FirstChild(ln, "solidFill"); solidFill != nil {
		if c, ok := colorengine.DecodeColor(solidFill, ctx); ok {
			color = c.String()
		}
	}
	if color == "" {
		return nil
	}
	widthEMU := xmlutil.Attr(ln, "w")
	width := 1.0
	if widthEMU != "" {
		width = xmlutil.EMU(widthEMU)
	}
	borderType := "solid"
	dasharray := ""
	if prstDash := xmlutil.FirstChild(ln, "prstDash"); prstDash != nil {
		switch xmlutil.Attr(prstDash, "val") {
		case "dash":
			borderType, dasharray = "dashed", "5,5"
		case "dashDot":
			borderType, dasharray = "dashed", "5,2,1,2"
		case "sysDot", "dot":
			borderType, dasharray = "dotted", "1,2"
		case "lgDash":
			borderType, dasharray = "dashed", "10,5"
		}
	}
	return &model.Border{Color: color, Width: width, Type: borderType, StrokeDasharray: dasharray}
}

// GetShadow decodes a:effectLst/a:outerShdw into a Shadow record. dist and
// blurRad are EMU lengths; dir is a 60000ths-of-a-degree angle measured
// clockwise from the positive x-axis, used to split dist into offX/offY.
func GetShadow(spPr *xmlutil.Node, ctx colorengine.SchemeContext) *model.Shadow {
	effectLst := xmlutil.FirstChild(spPr, "effectLst")
	outerShdw := xmlutil.FirstChild(effectLst, "outerShdw")
	if outerShdw == nil {
		return nil
	}
	color := ""
	for _, child := range outerShdw.Children {
		if c, ok := colorengine.DecodeColor(&xmlutil.Node{Name: "wrap", Children: []*xmlutil.Node{child}}, ctx); ok {
			color = c.String()
			break
		}
	}
	dist := xmlutil.EMU(xmlutil.AttrOr(outerShdw, "dist", "0"))
	blur := xmlutil.EMU(xmlutil.AttrOr(outerShdw, "blurRad", "0"))
	dirStr := xmlutil.AttrOr(outerShdw, "dir", "0")
	dirVal, _ := strconv.Atoi(dirStr)
	radians := float64(dirVal) / 60000.0 * math.Pi / 180.0
	return &model.Shadow{
		Color: color,
		Blur:  blur,
		OffX:  dist * math.Cos(radians),
		OffY:  dist * math.Sin(radians),
	}
}
