package resource

import (
	"path"
	"strings"

	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

// Rel is one <Relationship> entry from a part's _rels/*.rels companion.
type Rel struct {
	ID     string
	Type   string
	Target string
	// External is true when the relationship carries TargetMode="External"
	// — Target is then an absolute URL (http(s), mailto, ...) to be used
	// verbatim rather than a package-internal part path.
	External bool
}

// RelMap indexes a part's relationships by rId, the lookup key every
// r:embed/r:id/r:link attribute in the part itself uses.
type RelMap map[string]Rel

// TypeSuffix reports the last path segment of rel.Type, e.g.
// ".../relationships/slideLayout" -> "slideLayout". OOXML relationship
// type URIs are otherwise unwieldy to match against.
func (r Rel) TypeSuffix() string {
	if i := strings.LastIndexByte(r.Type, '/'); i >= 0 {
		return r.Type[i+1:]
	}
	return r.Type
}

// RelsPathFor returns the _rels companion path for a package part, e.g.
// "ppt/slides/slide1.xml" -> "ppt/slides/_rels/slide1.xml.rels".
func RelsPathFor(partPath string) string {
	dir, file := path.Split(partPath)
	return dir + "_rels/" + file + ".rels"
}

// ResolveTarget normalizes a relationship Target (which is relative to
// partPath's directory, or absolute with a leading "/") into a
// package-rooted path with no "." or ".." segments.
func ResolveTarget(partPath, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	dir := path.Dir(partPath)
	return path.Clean(path.Join(dir, target))
}

// LoadRels reads and parses partPath's _rels companion. A missing rels
// file is not an error (many parts have none) — it yields an empty map,
// per the non-fatal "reference-dangling" recovery spec §7 describes.
func LoadRels(ar Archive, partPath string) (RelMap, error) {
	relsPath := RelsPathFor(partPath)
	if !ar.Has(relsPath) {
		return RelMap{}, nil
	}
	data, err := ar.Read(relsPath)
	if err != nil {
		return RelMap{}, nil
	}
	root, err := xmlutil.Parse(strings.NewReader(string(data)))
	if err != nil {
		return RelMap{}, nil
	}
	out := make(RelMap)
	for _, rel := range xmlutil.Children(root, "Relationship") {
		id := xmlutil.Attr(rel, "Id")
		if id == "" {
			continue
		}
		target := xmlutil.Attr(rel, "Target")
		external := xmlutil.Attr(rel, "TargetMode") == "External"
		if !external && !strings.Contains(target, "://") {
			target = ResolveTarget(partPath, target)
		}
		out[id] = Rel{
			ID:       id,
			Type:     xmlutil.Attr(rel, "Type"),
			Target:   target,
			External: external,
		}
	}
	return out, nil
}

// FindByTypeSuffix returns the first relationship whose TypeSuffix matches
// suffix, in map iteration order (relationship maps have no meaningful
// order of their own — callers needing a specific one do so because a
// part legitimately has only one relationship of that type).
func (rm RelMap) FindByTypeSuffix(suffix string) (Rel, bool) {
	for _, rel := range rm {
		if rel.TypeSuffix() == suffix {
			return rel, true
		}
	}
	return Rel{}, false
}
