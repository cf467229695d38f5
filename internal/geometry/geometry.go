// Package geometry resolves shape position/size through the slide ->
// layout -> master a:xfrm inheritance chain, and remaps a group's
// children into the group's own coordinate space (spec.md §4.4).
package geometry

import (
	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

// Point is a resolved {left, top} or {width, height} pair in points.
type Point struct {
	X, Y float64
}

// Position returns {left, top} from the first xfrm in the chain
// (slide, layout, master — in that priority order) that carries an
// a:off child; missing entirely yields (0,0), per spec §4.4.
func Position(xfrms ...*xmlutil.Node) Point {
	for _, xfrm := range xfrms {
		if off := xmlutil.FirstChild(xfrm, "off"); off != nil {
			return Point{X: xmlutil.EMU(xmlutil.Attr(off, "x")), Y: xmlutil.EMU(xmlutil.Attr(off, "y"))}
		}
	}
	return Point{}
}

// Size returns {width, height} analogously to Position, using a:ext's
// cx/cy attributes.
func Size(xfrms ...*xmlutil.Node) Point {
	for _, xfrm := range xfrms {
		if ext := xmlutil.FirstChild(xfrm, "ext"); ext != nil {
			return Point{X: xmlutil.EMU(xmlutil.Attr(ext, "cx")), Y: xmlutil.EMU(xmlutil.Attr(ext, "cy"))}
		}
	}
	return Point{}
}

// Rect is a resolved element box: left/top/width/height in points plus
// rotation in clockwise degrees and the flip flags, matching spec §3's
// shared Element attributes.
type Rect struct {
	Left, Top, Width, Height float64
	Rotate                   int
	FlipH, FlipV             bool
}

// Resolve builds a Rect from the slide/layout/master a:xfrm chain. Any of
// the xfrm nodes may be nil (that scope didn't specify one); rot/flipH/
// flipV are read from the first (innermost, i.e. slide-level) xfrm only,
// since those never inherit past the shape that owns them in practice.
func Resolve(xfrms ...*xmlutil.Node) Rect {
	pos := Position(xfrms...)
	size := Size(xfrms...)
	r := Rect{Left: pos.X, Top: pos.Y, Width: size.X, Height: size.Y}
	if len(xfrms) > 0 && xfrms[0] != nil {
		r.Rotate = xmlutil.AngleToDegrees(xmlutil.Attr(xfrms[0], "rot"))
		r.FlipH = xmlutil.Attr(xfrms[0], "flipH") == "1"
		r.FlipV = xmlutil.Attr(xfrms[0], "flipV") == "1"
	}
	return r
}

// GroupFrame is a group shape's own coordinate-remapping parameters, read
// from its grpSpPr/a:xfrm: off/ext (the group's box in the parent's
// coordinate space) and chOff/chExt (the coordinate space children are
// authored in).
type GroupFrame struct {
	OffX, OffY   float64
	ExtX, ExtY   float64
	ChOffX, ChOffY float64
	ChExtX, ChExtY float64
}

// NewGroupFrame reads a group's grpSpPr/a:xfrm node into a GroupFrame, in
// points (via xmlutil.EMU) — the same unit every other Rect in the
// pipeline is expressed in, so Remap can mix a GroupFrame with a child
// Rect produced anywhere else without a unit conversion at the call site.
func NewGroupFrame(xfrm *xmlutil.Node) GroupFrame {
	var gf GroupFrame
	if off := xmlutil.FirstChild(xfrm, "off"); off != nil {
		gf.OffX = xmlutil.EMU(xmlutil.Attr(off, "x"))
		gf.OffY = xmlutil.EMU(xmlutil.Attr(off, "y"))
	}
	if ext := xmlutil.FirstChild(xfrm, "ext"); ext != nil {
		gf.ExtX = xmlutil.EMU(xmlutil.Attr(ext, "cx"))
		gf.ExtY = xmlutil.EMU(xmlutil.Attr(ext, "cy"))
	}
	if chOff := xmlutil.FirstChild(xfrm, "chOff"); chOff != nil {
		gf.ChOffX = xmlutil.EMU(xmlutil.Attr(chOff, "x"))
		gf.ChOffY = xmlutil.EMU(xmlutil.Attr(chOff, "y"))
	}
	if chExt := xmlutil.FirstChild(xfrm, "chExt"); chExt != nil {
		gf.ChExtX = xmlutil.EMU(xmlutil.Attr(chExt, "cx"))
		gf.ChExtY = xmlutil.EMU(xmlutil.Attr(chExt, "cy"))
	} else {
		// An absent chExt defaults to ext (identity scale), matching the
		// OOXML schema default and spec §8's "chOff=off, chExt=ext is
		// identity" property.
		gf.ChExtX, gf.ChExtY = gf.ExtX, gf.ExtY
	}
	return gf
}

// Remap re-expresses a child's already-resolved Rect in the group's own
// frame (spec §4.4): subtract the child-space offset (chOff), then scale
// by ext/chExt on each axis. The group's own off is not added; the group
// Element carries it. Rotation, fills, and colors are untouched.
func (gf GroupFrame) Remap(child Rect) Rect {
	sx, sy := 1.0, 1.0
	if gf.ChExtX != 0 {
		sx = gf.ExtX / gf.ChExtX
	}
	if gf.ChExtY != 0 {
		sy = gf.ExtY / gf.ChExtY
	}
	out := child
	out.Left = (child.Left - gf.ChOffX) * sx
	out.Top = (child.Top - gf.ChOffY) * sy
	out.Width = child.Width * sx
	out.Height = child.Height * sy
	return out
}
