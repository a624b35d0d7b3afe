package page

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DumpElement is one entry of a renderer element dump. Parent is the index
// of the parent entry, -1 for top-level elements. Entries must be ordered
// so a parent precedes its children.
type DumpElement struct {
	Tag    string            `json:"tag"`
	Class  string            `json:"class,omitempty"`
	Attrs  map[string]string `json:"attrs,omitempty"`
	Text   string            `json:"text"`
	HTML   string            `json:"html,omitempty"`
	Top    float64           `json:"top"`
	Parent int               `json:"parent"`
}

// Dump is the flat element list a page renderer exports.
type Dump struct {
	URL      string        `json:"url"`
	Elements []DumpElement `json:"elements"`
}

// FromDump rebuilds the element tree from a renderer dump.
func FromDump(d Dump) (*Document, error) {
	root := &Element{Tag: "body"}
	built := make([]*Element, len(d.Elements))
	var rootText []string

	for i, de := range d.Elements {
		e := &Element{
			Tag:  strings.ToLower(de.Tag),
			Text: NormalizeText(de.Text),
			HTML: de.HTML,
			Top:  de.Top,
		}
		if len(de.Attrs) > 0 || de.Class != "" {
			e.Attrs = make(map[string]string, len(de.Attrs)+1)
			for k, v := range de.Attrs {
				e.Attrs[k] = v
			}
			if de.Class != "" {
				e.Attrs["class"] = de.Class
			}
		}

		parent := root
		switch {
		case de.Parent < 0:
			rootText = append(rootText, e.Text)
		case de.Parent >= i:
			return nil, fmt.Errorf("element %d: parent %d does not precede it", i, de.Parent)
		default:
			parent = built[de.Parent]
		}
		e.Parent = parent
		parent.Children = append(parent.Children, e)
		built[i] = e
	}

	root.Text = NormalizeText(strings.Join(rootText, "\n"))
	return NewDocument(d.URL, root, true), nil
}

// ReadDump decodes a JSON element dump.
func ReadDump(r io.Reader) (*Document, error) {
	var d Dump
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decoding element dump: %w", err)
	}
	return FromDump(d)
}

// Load reads a saved page from disk: .json files are element dumps,
// anything else is HTML.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		doc, err := ReadDump(f)
		if err != nil {
			return nil, err
		}
		if doc.URL == "" {
			doc.URL = path
		}
		return doc, nil
	}
	return FromHTML(f, path)
}
