// Package inherit indexes a layout's or master's shape tree by
// placeholder identity so the slide-level resolver can look up the
// layout/master shape a given slide placeholder inherits from
// (placeholder matching by idx first, then by type; ByID is indexed but
// Lookup does not consult it).
package inherit

import "github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"

// shapeTags are the p:spTree child elements that can carry a placeholder
// (nvSpPr/nvPicPr/nvGraphicFramePr/nvGrpSpPr/nvCxnSpPr), each wrapping a
// p:ph element under .../nvPr.
var shapeTags = []string{"sp", "pic", "graphicFrame", "grpSp", "cxnSp"}

// Index is the per-scope (layout or master) placeholder lookup table.
// A later shape in document order overwrites an earlier one sharing the
// same key, matching how PowerPoint itself treats duplicate idx/type
// values as "last wins".
type Index struct {
	ByID   map[string]*xmlutil.Node
	ByIdx  map[string]*xmlutil.Node
	ByType map[string]*xmlutil.Node
}

func newIndex() *Index {
	return &Index{
		ByID:   make(map[string]*xmlutil.Node),
		ByIdx:  make(map[string]*xmlutil.Node),
		ByType: make(map[string]*xmlutil.Node),
	}
}

// Build walks spTree's direct shape children (and recurses into groups,
// since a grouped placeholder is still addressable from outside the
// group) and indexes each by its cNvPr id, ph idx, and ph type.
func Build(spTree *xmlutil.Node) *Index {
	idx := newIndex()
	if spTree == nil {
		return idx
	}
	walk(spTree, idx)
	return idx
}

func walk(parent *xmlutil.Node, idx *Index) {
	for _, tag := range shapeTags {
		for _, shape := range xmlutil.Children(parent, tag) {
			indexShape(shape, idx)
			if tag == "grpSp" {
				walk(shape, idx)
			}
		}
	}
}

func indexShape(shape *xmlutil.Node, idx *Index) {
	nv := findNvPr(shape)
	if nv == nil {
		return
	}
	cNvPr := xmlutil.FirstChild(nv, "cNvPr")
	if cNvPr != nil {
		if id := xmlutil.Attr(cNvPr, "id"); id != "" {
			idx.ByID[id] = shape
		}
	}
	ph := xmlutil.Lookup(nv, "nvPr", "ph")
	if ph == nil {
		return
	}
	if phIdx := xmlutil.Attr(ph, "idx"); phIdx != "" {
		idx.ByIdx[phIdx] = shape
	}
	// An absent type attribute is not the same as an explicit type="body" —
	// leave it out of ByType entirely rather than defaulting it, so a slide
	// placeholder that genuinely declares type="body" doesn't collide with
	// one that simply omitted the attribute.
	if phType := xmlutil.Attr(ph, "type"); phType != "" {
		idx.ByType[phType] = shape
	}
}

// findNvPr returns the non-visual properties group (nvSpPr, nvPicPr,
// nvGraphicFramePr, nvGrpSpPr, or nvCxnSpPr) a shape node carries — the
// name varies by shape kind but each wraps an identical cNvPr/nvPr pair.
func findNvPr(shape *xmlutil.Node) *xmlutil.Node {
	for _, name := range []string{"nvSpPr", "nvPicPr", "nvGraphicFramePr", "nvGrpSpPr", "nvCxnSpPr"} {
		if nv := xmlutil.FirstChild(shape, name); nv != nil {
			return nv
		}
	}
	return nil
}

// Lookup finds the layout/master shape a slide-level placeholder (with
// the given idx and type, either of which may be empty) should inherit
// non-visual properties, geometry, and styling from: idx match first
// (most specific), then type, matching PowerPoint's own placeholder
// matching precedence.
func (ix *Index) Lookup(phIdx, phType string) *xmlutil.Node {
	if ix == nil {
		return nil
	}
	if phIdx != "" {
		if n, ok := ix.ByIdx[phIdx]; ok {
			return n
		}
	}
	if phType != "" {
		if n, ok := ix.ByType[phType]; ok {
			return n
		}
	}
	return nil
}
