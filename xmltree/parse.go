package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseError reports a document that is not well-formed XML.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("XML parsing error on line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("XML parsing error: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DecoderProvider is the default Provider, backed by encoding/xml.
type DecoderProvider struct{}

// Parse reads a complete document and returns its document element.
// Any well-formedness problem is returned as a *ParseError and no partial
// tree is returned.
func (DecoderProvider) Parse(r io.Reader) (Node, error) {
	root, err := parse(r)
	if err != nil {
		return nil, err
	}
	return root, nil
}

// ParseString is a convenience wrapper around DecoderProvider.
func ParseString(s string) (Node, error) {
	return DecoderProvider{}.Parse(strings.NewReader(s))
}

func parse(r io.Reader) (*Element, error) {
	d := xml.NewDecoder(r)
	d.Strict = true

	fail := func(err error) (*Element, error) {
		var syntax *xml.SyntaxError
		if errors.As(err, &syntax) {
			return nil, &ParseError{Line: syntax.Line, Err: errors.New(syntax.Msg)}
		}
		line, _ := d.InputPos()
		return nil, &ParseError{Line: line, Err: err}
	}

	var (
		root *Element
		cur  *Element
	)
	for {
		// RawToken keeps namespace prefixes intact; start/end matching is
		// checked below instead.
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{name: qualified(t.Name), parent: cur}
			seen := make(map[string]bool, len(t.Attr))
			for _, a := range t.Attr {
				name := qualified(a.Name)
				if seen[name] {
					return fail(fmt.Errorf("duplicate attribute %q on <%s>", name, el.name))
				}
				seen[name] = true
				el.attrs = append(el.attrs, Attr{Name: name, Value: a.Value})
			}
			if cur == nil {
				if root != nil {
					return fail(fmt.Errorf("unexpected second root element <%s>", el.name))
				}
				root = el
			} else {
				cur.children = append(cur.children, el)
				cur.content = append(cur.content, el)
			}
			cur = el
		case xml.EndElement:
			name := qualified(t.Name)
			if cur == nil {
				return fail(fmt.Errorf("unexpected end element </%s>", name))
			}
			if cur.name != name {
				return fail(fmt.Errorf("element <%s> closed by </%s>", cur.name, name))
			}
			cur = cur.parent
		case xml.CharData:
			if cur == nil {
				if strings.TrimSpace(string(t)) != "" {
					return fail(errors.New("character data outside the root element"))
				}
				continue
			}
			cur.content = append(cur.content, string(t))
		}
	}

	if cur != nil {
		return fail(fmt.Errorf("unexpected end of document: <%s> is not closed", cur.name))
	}
	if root == nil {
		return fail(errors.New("document has no root element"))
	}
	return root, nil
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
