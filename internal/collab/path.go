// Package collab holds the small, shape-builder-adjacent helpers spec.md
// §6 lists as "collaborator contracts" it leaves unspecified: custom
// vector paths, borders, shadows, and text-body rendering. Each is
// grounded on the teacher's own shape/style/renderer handling of the same
// OOXML elements, simplified to the subset spec.md's data model surfaces.
package collab

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

// CustomPath converts a:custGeom's path list into an SVG path string,
// scaling from the path's own local coordinate space (a:path's w/h
// attributes) to the shape's actual width/height in points.
func CustomPath(custGeom *xmlutil.Node, w, h float64) string {
	pathLst := xmlutil.FirstChild(custGeom, "pathLst")
	path := xmlutil.FirstChild(pathLst, "path")
	if path == nil {
		return ""
	}
	pathW := xmlutil.AttrOr(path, "w", "1")
	pathH := xmlutil.AttrOr(path, "h", "1")
	localW, _ := strconv.ParseFloat(pathW, 64)
	localH, _ := strconv.ParseFloat(pathH, 64)
	if localW == 0 {
		localW = 1
	}
	if localH == 0 {
		localH = 1
	}
	sx, sy := w/localW, h/localH

	scale := func(n *xmlutil.Node) (float64, float64) {
		x, _ := strconv.ParseFloat(xmlutil.Attr(n, "x"), 64)
		y, _ := strconv.ParseFloat(xmlutil.Attr(n, "y"), 64)
		return x * sx, y * sy
	}

	var b strings.Builder
	for _, seg := range path.Children {
		switch seg.Name {
		case "moveTo":
			if pt := xmlutil.FirstChild(seg, "pt"); pt != nil {
				x, y := scale(pt)
				fmt.Fprintf(&b, "M%.2f,%.2f ", x, y)
			}
		case "lnTo":
			if pt := xmlutil.FirstChild(seg, "pt"); pt != nil {
				x, y := scale(pt)
				fmt.Fprintf(&b, "L%.2f,%.2f ", x, y)
			}
		case "cubicBezTo":
			pts := xmlutil.Children(seg, "pt")
			if len(pts) == 3 {
				x1, y1 := scale(pts[0])
				x2, y2 := scale(pts[1])
				x3, y3 := scale(pts[2])
				fmt.Fprintf(&b, "C%.2f,%.2f %.2f,%.2f %.2f,%.2f ", x1, y1, x2, y2, x3, y3)
			}
		case "arcTo":
			// Approximated as a line to the implied end point is not
			// possible without the full arc math; OOXML arcTo is rare in
			// custGeom (mostly used by preset geometry, which this path
			// never sees), so it is left unhandled here rather than guessed.
		case "close":
			b.WriteString("Z ")
		}
	}
	return strings.TrimSpace(b.String())
}
