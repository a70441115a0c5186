package convert

import (
	"strings"
	"time"

	"github.com/drone/drone-xml-html/xmltree"
)

// RootParent is the ParentTag of the document element.
const RootParent = "root"

// ElementRecord is one qualifying element of a generic document.
type ElementRecord struct {
	Tag string
	// Text is the trimmed text of the element including its descendants.
	Text        string
	Attributes  []xmltree.Attr
	ParentTag   string
	HasChildren bool
	ChildCount  int
	Depth       int
}

// Attr returns the value of the named attribute.
func (r ElementRecord) Attr(name string) (string, bool) {
	for _, a := range r.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Elements extracts every element that carries text or attributes.
type Elements struct {
	Location *time.Location
	Now      func() time.Time
}

// Extract walks the document depth-first, emitting a parent before its
// children. Elements with neither text nor attributes are skipped, but
// their descendants are still visited and keep their full depth.
func (e *Elements) Extract(root xmltree.Node) []ElementRecord {
	var records []ElementRecord
	xmltree.Walk(root, func(n xmltree.Node) {
		text := strings.TrimSpace(n.Text())
		attrs := n.Attrs()
		if text == "" && len(attrs) == 0 {
			return
		}

		parent := RootParent
		if p := n.Parent(); p != nil {
			parent = p.Tag()
		}
		children := len(n.Children())

		records = append(records, ElementRecord{
			Tag:         n.Tag(),
			Text:        text,
			Attributes:  append([]xmltree.Attr(nil), attrs...),
			ParentTag:   parent,
			HasChildren: children > 0,
			ChildCount:  children,
			Depth:       xmltree.Depth(n),
		})
	})
	return records
}

// Summarize implements Strategy.
func (e *Elements) Summarize(records []ElementRecord) ElementSummary {
	var s ElementSummary
	seen := make(map[string]bool)
	for _, rec := range records {
		s.TotalElements++
		if !seen[rec.Tag] {
			seen[rec.Tag] = true
			s.ElementTypes = append(s.ElementTypes, rec.Tag)
		}
		if len(rec.Attributes) > 0 {
			s.ElementsWithAttributes++
		}
		if rec.Text != "" {
			s.ElementsWithContent++
		}
		s.TotalAttributes += len(rec.Attributes)
		s.MaxDepth = max(s.MaxDepth, rec.Depth)
	}
	s.UniqueElements = len(s.ElementTypes)
	return s
}
