package picture

import (
	"sort"

	"github.com/pfrederiksen/playoff-picture/internal/team"
)

// SortTeams orders teams by probability descending, then win fraction
// descending. Unknown probability (-1) sorts last. Ties keep input order.
func SortTeams(teams []*Team) {
	sort.SliceStable(teams, func(i, j int) bool {
		return less(teams[i], teams[j])
	})
}

func less(a, b *Team) bool {
	if a.Probability != b.Probability {
		return a.Probability > b.Probability
	}
	return a.Record.WinFraction() > b.Record.WinFraction()
}

// SortBuckets sorts bubble and eliminated for both conferences. Seeds keep
// the standings order.
func (p *Picture) SortBuckets() {
	for _, conf := range team.Conferences {
		SortTeams(p.Bubble.Get(conf))
		SortTeams(p.Eliminated.Get(conf))
	}
}
