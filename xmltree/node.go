// Package xmltree exposes a parsed XML document through a small node
// contract so the converters do not depend on a particular parser.
package xmltree

import (
	"io"
	"strings"
)

// Attr is a single attribute in document order.
type Attr struct {
	Name  string
	Value string
}

// Node is the minimal view of an XML element the converters walk.
type Node interface {
	// Tag returns the qualified tag name, including any namespace prefix.
	Tag() string
	// Text returns the concatenated character data of the element and
	// all of its descendants, like the DOM textContent property.
	Text() string
	Attrs() []Attr
	// Children returns the element children in document order.
	Children() []Node
	// Parent returns nil for the document element.
	Parent() Node
}

// Provider parses a document and returns its document element.
type Provider interface {
	Parse(r io.Reader) (Node, error)
}

// Element is the Node implementation produced by the default provider.
type Element struct {
	name     string
	attrs    []Attr
	parent   *Element
	children []*Element
	// content holds character data and child elements in order.
	content []any
}

// Tag implements Node.
func (e *Element) Tag() string { return e.name }

// Attrs implements Node.
func (e *Element) Attrs() []Attr { return e.attrs }

// Text implements Node.
func (e *Element) Text() string {
	var sb strings.Builder
	e.writeText(&sb)
	return sb.String()
}

func (e *Element) writeText(sb *strings.Builder) {
	for _, c := range e.content {
		switch v := c.(type) {
		case string:
			sb.WriteString(v)
		case *Element:
			v.writeText(sb)
		}
	}
}

// Children implements Node.
func (e *Element) Children() []Node {
	nodes := make([]Node, len(e.children))
	for i, c := range e.children {
		nodes[i] = c
	}
	return nodes
}

// Parent implements Node.
func (e *Element) Parent() Node {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// Attribute returns the value of the named attribute and whether it exists.
func Attribute(n Node, name string) (string, bool) {
	for _, a := range n.Attrs() {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrValue returns the named attribute or an empty string.
func AttrValue(n Node, name string) string {
	v, _ := Attribute(n, name)
	return v
}

// FirstChild returns the first direct child with the given tag.
func FirstChild(n Node, tag string) Node {
	for _, c := range n.Children() {
		if c.Tag() == tag {
			return c
		}
	}
	return nil
}

// ChildrenByTag returns the direct children with the given tag.
func ChildrenByTag(n Node, tag string) []Node {
	var out []Node
	for _, c := range n.Children() {
		if c.Tag() == tag {
			out = append(out, c)
		}
	}
	return out
}

// Walk visits n and its descendants depth-first, parents before children.
func Walk(n Node, fn func(Node)) {
	fn(n)
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// Depth returns the number of ancestors of n.
func Depth(n Node) int {
	depth := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		depth++
	}
	return depth
}
