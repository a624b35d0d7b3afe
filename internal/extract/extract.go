package extract

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/pfrederiksen/playoff-picture/internal/page"
)

// ErrNoFields means a context yielded neither a record nor a probability.
var ErrNoFields = errors.New("no record or probability in context")

// Direction is the week-over-week movement of a team.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
	Same Direction = "same"
)

// Fields holds everything pulled out of one mention's context block.
type Fields struct {
	Record      Record
	Probability string // raw token, e.g. ">99%"; "" when absent
	Trend       int
	Direction   Direction
}

// HasSignal reports whether the context carried a record or a probability.
func (f Fields) HasSignal() bool {
	return f.Record.Valid || f.Probability != ""
}

// Rule fills part of Fields from a context element and its text.
type Rule struct {
	Name  string
	Apply func(ctx *page.Element, text string, f *Fields)
}

var (
	percentPattern = regexp.MustCompile(`[<>]?\d+%`)
	integerPattern = regexp.MustCompile(`\d+`)
)

// ProbabilityRule takes the first N%, >N% or <N% token.
var ProbabilityRule = Rule{
	Name: "probability",
	Apply: func(_ *page.Element, text string, f *Fields) {
		if m := percentPattern.FindString(text); m != "" {
			f.Probability = m
		}
	},
}

// ClinchedRule sets 100% when no percentage was found but the block
// mentions a clinch or a division title.
var ClinchedRule = Rule{
	Name: "clinched",
	Apply: func(_ *page.Element, text string, f *Fields) {
		if f.Probability != "" {
			return
		}
		lower := strings.ToLower(text)
		if strings.Contains(lower, "clinched") || strings.Contains(lower, "division") {
			f.Probability = "100%"
		}
	},
}

// RecordRule takes the first W-L(-T) token.
var RecordRule = Rule{
	Name: "record",
	Apply: func(_ *page.Element, text string, f *Fields) {
		if r, ok := ParseRecord(text); ok {
			f.Record = r
		}
	},
}

// TrendRule reads the change arrow. Magnitude is the first integer in the
// arrow's container text.
var TrendRule = Rule{
	Name: "trend",
	Apply: func(ctx *page.Element, text string, f *Fields) {
		f.Direction = Same
		f.Trend = 0
		if ctx == nil {
			return
		}

		arrow := ctx.Find(isArrow)
		if arrow == nil {
			// "--" is the page's explicit no-change marker; same either way
			return
		}

		if strings.Contains(arrow.Class(), "Up") || strings.Contains(arrow.HTML, "Up") {
			f.Direction = Up
		}
		if strings.Contains(arrow.Class(), "Down") || strings.Contains(arrow.HTML, "Down") {
			f.Direction = Down
		}
		if arrow.Parent != nil {
			if m := integerPattern.FindString(arrow.Parent.Text); m != "" {
				f.Trend, _ = strconv.Atoi(m)
			}
		}
	},
}

func isArrow(e *page.Element) bool {
	return strings.Contains(e.Class(), "Changearrow") || strings.Contains(e.Attr("data-testid"), "arrow")
}

// DefaultRules is the evaluation order used by the standings classifier.
var DefaultRules = []Rule{ProbabilityRule, ClinchedRule, RecordRule, TrendRule}

// Extractor runs an ordered rule list over a context block.
type Extractor struct {
	rules []Rule
}

// New creates an Extractor. With no rules it uses DefaultRules.
func New(rules ...Rule) *Extractor {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Extractor{rules: rules}
}

// Extract applies every rule in order to ctx. It returns ErrNoFields, along
// with whatever was extracted, when neither a record nor a probability
// was found.
func (x *Extractor) Extract(ctx *page.Element) (Fields, error) {
	f := Fields{Direction: Same}
	text := ""
	if ctx != nil {
		text = ctx.Text
	}
	for _, rule := range x.rules {
		rule.Apply(ctx, text, &f)
	}
	if !f.HasSignal() {
		return f, ErrNoFields
	}
	return f, nil
}
