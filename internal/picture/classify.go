package picture

import (
	"errors"
	"strings"

	"github.com/pfrederiksen/playoff-picture/internal/extract"
	"github.com/pfrederiksen/playoff-picture/internal/logger"
	"github.com/pfrederiksen/playoff-picture/internal/page"
	"github.com/pfrederiksen/playoff-picture/internal/team"
)

const (
	// DefaultNavExclusion is the banner/navigation zone at the top of the page.
	DefaultNavExclusion = 300.0

	// MaxContextDepth bounds the ancestor climb from a mention.
	MaxContextDepth = 4

	// ContextMarker identifies a team card on the standings page.
	ContextMarker = "PLAYOFF PROBABILITY"
)

// Mention is a team reference scraped from the standings page.
type Mention struct {
	ID     string
	Conf   team.Conference
	Top    float64
	Fields extract.Fields
}

// ClassifierOptions tunes the positional heuristics.
type ClassifierOptions struct {
	NavExclusion float64
}

// DefaultClassifierOptions matches the layout of the live standings page.
func DefaultClassifierOptions() ClassifierOptions {
	return ClassifierOptions{NavExclusion: DefaultNavExclusion}
}

// Classifier finds team mentions and extracts their fields.
type Classifier struct {
	reg  *team.Registry
	x    *extract.Extractor
	opts ClassifierOptions
	log  *logger.Logger
}

// NewClassifier creates a Classifier.
func NewClassifier(reg *team.Registry, x *extract.Extractor, opts ClassifierOptions, log *logger.Logger) *Classifier {
	if log == nil {
		log = logger.Default()
	}
	return &Classifier{reg: reg, x: x, opts: opts, log: log}
}

// Classify returns one mention per leaf element that names a team and has a
// record or probability in its context, in document order.
func (c *Classifier) Classify(doc *page.Document) []Mention {
	var mentions []Mention
	for _, el := range doc.Elements() {
		if !el.IsLeaf() || el.Text == "" {
			continue
		}
		t, ok := c.reg.MatchToken(el.Text)
		if !ok {
			continue
		}
		if el.Top < c.opts.NavExclusion {
			continue
		}

		ctx := ContextFor(el, ContextMarker, MaxContextDepth)
		fields, err := c.x.Extract(ctx)
		if errors.Is(err, extract.ErrNoFields) {
			logger.IncrCounter("mentions.discarded")
			c.log.Debug("mention without record or probability", logger.Fields{
				"team": t.ID,
				"text": el.Text,
				"top":  el.Top,
			})
			continue
		}

		logger.IncrCounter("mentions.matched")
		mentions = append(mentions, Mention{
			ID:     t.ID,
			Conf:   t.Conference,
			Top:    el.Top,
			Fields: fields,
		})
	}
	return mentions
}

// ContextFor climbs at most depth ancestors of el looking for one whose text
// contains marker. Without a hit it falls back to the grandparent, then the
// parent, then el itself. The document root is never a context.
func ContextFor(el *page.Element, marker string, depth int) *page.Element {
	container := el
	for i := 0; i < depth && inner(container.Parent); i++ {
		container = container.Parent
		if strings.Contains(container.Text, marker) {
			return container
		}
	}

	switch {
	case inner(el.Parent) && inner(el.Parent.Parent):
		return el.Parent.Parent
	case inner(el.Parent):
		return el.Parent
	}
	return el
}

// inner reports whether e is a real element rather than a tree root.
func inner(e *page.Element) bool {
	return e != nil && e.Parent != nil
}
