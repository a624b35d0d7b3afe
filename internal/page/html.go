package page

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
)

// TopAttr carries a renderer-measured top offset on saved HTML.
const TopAttr = "data-top"

// FromHTML parses markup into a Document. Element tops come from the
// data-top attribute when every element carries one, else from document order.
func FromHTML(r io.Reader, url string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return FromSelection(doc.Selection, url), nil
}

// FromSelection builds a Document from the body of a parsed goquery document.
func FromSelection(sel *goquery.Selection, url string) *Document {
	body := sel.Find("body").First()
	if body.Length() == 0 {
		body = sel
	}

	root := &Element{Tag: "body"}
	order := 0
	positional := true

	var build func(parent *Element, s *goquery.Selection)
	build = func(parent *Element, s *goquery.Selection) {
		s.Children().Each(func(_ int, child *goquery.Selection) {
			node := child.Nodes[0]
			if skipElement(node) {
				return
			}
			order++

			e := &Element{
				Tag:    strings.ToLower(goquery.NodeName(child)),
				Attrs:  attrs(node),
				Text:   InnerText(node),
				Parent: parent,
			}
			e.HTML, _ = child.Html()

			if top, ok := parseTop(e.Attr(TopAttr)); ok {
				e.Top = top
			} else {
				positional = false
				e.Top = float64(order)
			}

			parent.Children = append(parent.Children, e)
			build(e, child)
		})
	}
	build(root, body)

	if len(body.Nodes) > 0 {
		root.Text = InnerText(body.Nodes[0])
	}
	if order == 0 {
		positional = false
	}
	if !positional {
		reindexTops(root)
	}
	return NewDocument(url, root, positional)
}

// reindexTops replaces partial data-top values with document order so a
// page never mixes the two scales.
func reindexTops(root *Element) {
	order := 0
	var walk func(*Element)
	walk = func(e *Element) {
		for _, c := range e.Children {
			order++
			c.Top = float64(order)
			walk(c)
		}
	}
	walk(root)
}

func parseTop(v string) (float64, bool) {
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func attrs(n *html.Node) map[string]string {
	if len(n.Attr) == 0 {
		return nil
	}
	m := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		m[a.Key] = a.Val
	}
	return m
}

func skipElement(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript, atom.Template:
		return true
	}
	return false
}

func isBlock(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Address, atom.Article, atom.Aside, atom.Blockquote, atom.Dd, atom.Div,
		atom.Dl, atom.Dt, atom.Fieldset, atom.Figcaption, atom.Figure, atom.Footer,
		atom.Form, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Header,
		atom.Hr, atom.Li, atom.Main, atom.Nav, atom.Ol, atom.P, atom.Pre, atom.Section,
		atom.Table, atom.Tbody, atom.Thead, atom.Tfoot, atom.Tr, atom.Ul:
		return true
	}
	return false
}

var (
	spaceRun  = regexp.MustCompile(`[ \t\r\f\v]+`)
	blankRuns = regexp.MustCompile(`\n{2,}`)
)

// InnerText approximates a browser's innerText: block elements and <br>
// break lines, inline whitespace collapses, script and style are skipped.
// Output is NFKC-normalized so non-breaking spaces and full-width digits
// match the extraction patterns.
func InnerText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(strings.ReplaceAll(n.Data, "\n", " "))
			return
		case html.ElementNode:
			if skipElement(n) {
				return
			}
			if n.DataAtom == atom.Br {
				b.WriteByte('\n')
				return
			}
		}

		block := n.Type == html.ElementNode && isBlock(n)
		if block {
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			b.WriteByte('\n')
		} else if n.Type == html.ElementNode && (n.DataAtom == atom.Td || n.DataAtom == atom.Th) {
			b.WriteByte(' ')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return NormalizeText(b.String())
}

// NormalizeText applies NFKC, collapses inline whitespace, trims every line
// and drops blank lines.
func NormalizeText(s string) string {
	s = norm.NFKC.String(s)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}
	s = strings.Join(lines, "\n")
	s = blankRuns.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
