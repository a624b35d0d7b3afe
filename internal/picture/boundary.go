package picture

import (
	"errors"
	"math"
	"strings"

	"github.com/pfrederiksen/playoff-picture/internal/page"
)

// ErrMissingBoundary means the page has no ELIMINATED header. Callers treat
// every mention as bubble.
var ErrMissingBoundary = errors.New("eliminated section header not found")

const (
	eliminatedLabel = "ELIMINATED"

	// DefaultBoundaryFloor discards banner and navigation headers.
	DefaultBoundaryFloor = 100.0
)

// NoBoundary places every mention above the line.
var NoBoundary = math.Inf(1)

// FindBoundary returns the top of the highest ELIMINATED header below floor.
// Without one it returns NoBoundary and ErrMissingBoundary.
func FindBoundary(doc *page.Document, floor float64) (float64, error) {
	boundary := NoBoundary
	for _, e := range doc.Elements() {
		if !page.HasTag(e, "h2", "h3", "div") {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(e.Text), eliminatedLabel) {
			continue
		}
		if e.Top > floor && e.Top < boundary {
			boundary = e.Top
		}
	}
	if math.IsInf(boundary, 1) {
		return NoBoundary, ErrMissingBoundary
	}
	return boundary, nil
}
