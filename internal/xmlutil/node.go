// Package xmlutil provides a loosely-typed XML tree and the small set of
// traversal helpers the resolution pipeline builds on: every PresentationML
// part (slide, layout, master, theme, diagram) is parsed once into a Node
// tree and then walked repeatedly by the color/fill/geometry/shape
// resolvers, instead of re-parsing into a part-specific struct each time.
package xmlutil

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Node is one element of a parsed XML tree. Attribute values are keyed by
// their local name (namespace prefixes are stripped, matching how PPTX
// tag/attribute names are used in practice — see DESIGN.md). Text is the
// concatenation of this element's own character data, not its descendants'.
type Node struct {
	Name     string
	Attrs    map[string]string
	Children []*Node
	Text     string
}

// Parse reads r as XML and returns its root element as a Node tree.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false

	var stack []*Node
	var root *Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xmlutil: parse: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				n.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			} else if root == nil {
				root = n
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("xmlutil: parse: empty document")
	}
	return root, nil
}

// Children returns n's direct children named name, in document order. A
// nil n yields nil, so callers can chain Children(Children(n, "a")[0], "b")
// style code without nil checks creeping in everywhere — though Lookup
// below is the preferred way to walk a fixed path.
func Children(n *Node, name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// FirstChild returns n's first direct child named name, or nil.
func FirstChild(n *Node, name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Lookup walks successive child names starting at n, returning the node
// reached or nil the moment a key is missing. It never panics on a missing
// branch; passing a nil n (a programmer error, not a data error — the
// sequence itself must still be valid) is tolerated and simply yields nil.
func Lookup(n *Node, path ...string) *Node {
	cur := n
	for _, key := range path {
		if cur == nil {
			return nil
		}
		cur = FirstChild(cur, key)
	}
	return cur
}

// Attr returns the attribute named key on n, or "" if n is nil or the
// attribute is absent.
func Attr(n *Node, key string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[key]
}

// AttrOr returns n's attribute named key, or def if absent.
func AttrOr(n *Node, key, def string) string {
	if n == nil {
		return def
	}
	if v, ok := n.Attrs[key]; ok {
		return v
	}
	return def
}

// HasChild reports whether n has at least one direct child named name —
// used for the noFill/solidFill/... fill-kind switches in fillresolve,
// where only presence (not content) decides the branch.
func HasChild(n *Node, name string) bool {
	return FirstChild(n, name) != nil
}
