// Package shapebuild implements the Shape Builder (spec.md §4.8): turns a
// p:sp or p:cxnSp node, plus its layout/master placeholder counterparts,
// into a resolved shape or text Element.
package shapebuild

import (
	"strings"

	"github.com/VitaminC1989/pptxtojson-go/internal/collab"
	"github.com/VitaminC1989/pptxtojson-go/internal/colorengine"
	"github.com/VitaminC1989/pptxtojson-go/internal/fillresolve"
	"github.com/VitaminC1989/pptxtojson-go/internal/geometry"
	"github.com/VitaminC1989/pptxtojson-go/internal/inherit"
	"github.com/VitaminC1989/pptxtojson-go/internal/model"
	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

// Placeholder is the {type, idx} pair read from a shape's p:nvPr/p:ph.
type Placeholder struct {
	Type string
	Idx  string
}

// ReadPlaceholder extracts the ph type/idx from a shape's non-visual
// properties, trying each of the nv*Pr wrapper names a shape kind uses.
func ReadPlaceholder(shape *xmlutil.Node) Placeholder {
	for _, nvName := range []string{"nvSpPr", "nvCxnSpPr", "nvPicPr", "nvGraphicFramePr"} {
		if nv := xmlutil.FirstChild(shape, nvName); nv != nil {
			if ph := xmlutil.Lookup(nv, "nvPr", "ph"); ph != nil {
				return Placeholder{Type: xmlutil.Attr(ph, "type"), Idx: xmlutil.Attr(ph, "idx")}
			}
		}
	}
	return Placeholder{}
}

// ResolveType implements spec §4.8 step 1's fallback chain: explicit ph
// type wins; else a txBox is "text"; else the layout/master placeholder's
// own type; else "diagram" when source is a diagram shape, else "obj".
func ResolveType(shape *xmlutil.Node, ph Placeholder, layoutIdx, masterIdx *inherit.Index, isDiagramSource bool) string {
	if ph.Type != "" {
		return ph.Type
	}
	if nvSpPr := xmlutil.FirstChild(shape, "nvSpPr"); nvSpPr != nil {
		if cNvSpPr := xmlutil.FirstChild(nvSpPr, "cNvSpPr"); cNvSpPr != nil {
			if xmlutil.Attr(cNvSpPr, "txBox") == "1" {
				return "text"
			}
		}
	}
	if n := layoutIdx.Lookup(ph.Idx, ""); n != nil {
		if t := ReadPlaceholder(n).Type; t != "" {
			return t
		}
	}
	if n := masterIdx.Lookup(ph.Idx, ""); n != nil {
		if t := ReadPlaceholder(n).Type; t != "" {
			return t
		}
	}
	if isDiagramSource {
		return "diagram"
	}
	return "obj"
}

// Chain is the (slide, layout, master) shape-node triple used to resolve
// a placeholder's inherited geometry, fill, and text defaults, per spec
// §9's "pass the tuple down, not parent pointers" design note.
type Chain struct {
	Slide  *xmlutil.Node
	Layout *xmlutil.Node
	Master *xmlutil.Node
}

// Options mirrors the root package's Options fields Build itself needs,
// passed down through dispatch.Context rather than imported directly
// (the root package already depends on this one).
type Options struct {
	// ResolvePlaceholderText controls whether a placeholder shape with no
	// slide-level text content falls back to the layout's (then master's)
	// own txBody — PowerPoint's "Click to add title" prompt text.
	ResolvePlaceholderText bool
}

func sp(n *xmlutil.Node) *xmlutil.Node { return xmlutil.FirstChild(n, "spPr") }

func xfrmOf(spPr *xmlutil.Node) *xmlutil.Node { return xmlutil.FirstChild(spPr, "xfrm") }

// hasRunText reports whether txBody carries any a:r/a:t with non-empty
// text content, distinguishing a genuinely empty placeholder from one
// that merely has paragraph/run markup wrapping no visible text.
func hasRunText(txBody *xmlutil.Node) bool {
	for _, p := range xmlutil.Children(txBody, "p") {
		for _, r := range xmlutil.Children(p, "r") {
			if t := xmlutil.FirstChild(r, "t"); t != nil && strings.TrimSpace(t.Text) != "" {
				return true
			}
		}
	}
	return false
}

// Build resolves a single p:sp/p:cxnSp node into a model.Element. ctx
// supplies the active color scheme; the layout placeholder's txBody, when
// there is one, is passed on to collab.GenTextBody. source records which dispatch path
// produced this call ("slide", "diagram", ...), used only for the
// diagram-type fallback in ResolveType. resolveLink resolves a run's
// hyperlink relationship id (spec's supplemented Hyperlinks feature); opts
// controls the placeholder prompt-text fallback.
func Build(chain Chain, ctx colorengine.SchemeContext, layoutIdx, masterIdx *inherit.Index, source string, resolveLink collab.LinkResolver, opts Options) model.Element {
	shape := chain.Slide
	ph := ReadPlaceholder(shape)

	layoutShape := layoutIdx.Lookup(ph.Idx, ph.Type)
	masterShape := masterIdx.Lookup(ph.Idx, ph.Type)

	typ := ResolveType(shape, ph, layoutIdx, masterIdx, source == "diagram")

	slideSpPr := sp(shape)
	layoutSpPr := sp(layoutShape)
	masterSpPr := sp(masterShape)

	rect := geometry.Resolve(xfrmOf(slideSpPr), xfrmOf(layoutSpPr), xfrmOf(masterSpPr))

	el := model.Element{
		Left: rect.Left, Top: rect.Top, Width: rect.Width, Height: rect.Height,
		Rotate: rect.Rotate, IsFlipH: rect.FlipH, IsFlipV: rect.FlipV,
	}
	if cNvPr := firstCNvPr(shape); cNvPr != nil {
		el.Name = xmlutil.Attr(cNvPr, "name")
	}

	var styleFillRef *xmlutil.Node
	if style := xmlutil.FirstChild(shape, "style"); style != nil {
		styleFillRef = xmlutil.FirstChild(style, "fillRef")
	}

	// A shape's own fillRef schemeClr is the real-world source of the
	// "phClr" placeholder color substituted wherever a:schemeClr val="phClr"
	// appears below it (e.g. in a preset shape's own theme-referenced
	// line/effect, or further down in a diagram colorsN fill) — spec §4.2.
	shapeCtx := ctx
	if fillRefClr := xmlutil.FirstChild(styleFillRef, "schemeClr"); fillRefClr != nil {
		if c, ok := colorengine.DecodeColor(fillRefClr, ctx); ok {
			shapeCtx.PhClr = c.Hex
		}
	}

	fillColor := fillresolve.ResolveShapeFill(slideSpPr, styleFillRef, shapeCtx)

	border := collab.GetBorder(slideSpPr, shapeCtx)
	shadow := collab.GetShadow(slideSpPr, shapeCtx)

	textRotate := rect.Rotate
	txBody := xmlutil.FirstChild(shape, "txBody")
	var layoutTxBody *xmlutil.Node
	if layoutShape != nil {
		layoutTxBody = xmlutil.FirstChild(layoutShape, "txBody")
	}
	if opts.ResolvePlaceholderText && (ph.Type != "" || ph.Idx != "") && !hasRunText(txBody) {
		if layoutTxBody != nil && hasRunText(layoutTxBody) {
			txBody = layoutTxBody
		} else if masterShape != nil {
			if masterTxBody := xmlutil.FirstChild(masterShape, "txBody"); hasRunText(masterTxBody) {
				txBody = masterTxBody
			}
		}
	}
	if txBody != nil {
		if bodyPr := xmlutil.FirstChild(txBody, "bodyPr"); bodyPr != nil {
			if txXfrmRot := xmlutil.Attr(bodyPr, "rot"); txXfrmRot != "" {
				textRotate = xmlutil.AngleToDegrees(txXfrmRot) + 90
			}
		}
		el.Content = collab.GenTextBody(txBody, layoutTxBody, shapeCtx, resolveLink)
	}

	prstGeom := xmlutil.FirstChild(slideSpPr, "prstGeom")
	custGeom := xmlutil.FirstChild(slideSpPr, "custGeom")

	switch {
	case custGeom != nil && typ != "diagram":
		el.Type = model.TypeShape
		el.ShapType = "custom"
		el.Path = collab.CustomPath(custGeom, rect.Width, rect.Height)
		el.FillColor = fillColor
		el.Border = border
		el.Shadow = shadow
	case prstGeom != nil && (typ == "obj" || typ == ""):
		el.Type = model.TypeShape
		el.ShapType = xmlutil.AttrOr(prstGeom, "prst", "rect")
		el.FillColor = fillColor
		el.Border = border
		el.Shadow = shadow
	default:
		el.Type = model.TypeText
		el.Rotate = textRotate
		el.FillColor = fillColor
		el.Border = border
		el.Shadow = shadow
	}
	return el
}

func firstCNvPr(shape *xmlutil.Node) *xmlutil.Node {
	for _, nvName := range []string{"nvSpPr", "nvCxnSpPr", "nvPicPr", "nvGraphicFramePr", "nvGrpSpPr"} {
		if nv := xmlutil.FirstChild(shape, nvName); nv != nil {
			if c := xmlutil.FirstChild(nv, "cNvPr"); c != nil {
				return c
			}
		}
	}
	return nil
}
