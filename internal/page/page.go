package page

import (
	"strings"
)

// Element is one node of a rendered page.
type Element struct {
	Tag      string
	Attrs    map[string]string
	Text     string  // rendered inner text, trimmed
	HTML     string  // inner markup
	Top      float64 // scroll-adjusted top offset, or document order
	Parent   *Element
	Children []*Element
}

// Attr returns an attribute value or "".
func (e *Element) Attr(name string) string {
	if e.Attrs == nil {
		return ""
	}
	return e.Attrs[name]
}

// Class returns the raw class attribute.
func (e *Element) Class() string {
	return e.Attr("class")
}

// IsLeaf reports whether the element has no child elements.
func (e *Element) IsLeaf() bool {
	return len(e.Children) == 0
}

// Find returns the first descendant (pre-order, excluding e) that matches.
func (e *Element) Find(match func(*Element) bool) *Element {
	for _, c := range e.Children {
		if match(c) {
			return c
		}
		if found := c.Find(match); found != nil {
			return found
		}
	}
	return nil
}

// Document is a flattened rendered page.
type Document struct {
	URL string

	// Positional is true when Top values are real layout offsets reported by
	// a renderer. Otherwise Top is the element's document order.
	Positional bool

	root     *Element
	elements []*Element // pre-order, root excluded
}

// NewDocument wraps a root element and indexes its descendants.
func NewDocument(url string, root *Element, positional bool) *Document {
	d := &Document{URL: url, Positional: positional, root: root}
	var walk func(*Element)
	walk = func(e *Element) {
		for _, c := range e.Children {
			d.elements = append(d.elements, c)
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return d
}

// Root returns the synthetic root element.
func (d *Document) Root() *Element {
	return d.root
}

// Elements returns every element in document order.
func (d *Document) Elements() []*Element {
	return d.elements
}

// Filter returns the elements that match, in document order.
func (d *Document) Filter(match func(*Element) bool) []*Element {
	var out []*Element
	for _, e := range d.elements {
		if match(e) {
			out = append(out, e)
		}
	}
	return out
}

// ContainsText reports whether the page text contains s.
func (d *Document) ContainsText(s string) bool {
	if d.root == nil {
		return false
	}
	return strings.Contains(d.root.Text, s)
}

// HasTag reports whether tag is one of tags, compared case-insensitively.
func HasTag(e *Element, tags ...string) bool {
	for _, t := range tags {
		if strings.EqualFold(e.Tag, t) {
			return true
		}
	}
	return false
}
