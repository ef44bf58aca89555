// Package engine evaluates habit recurrence rules and derives streak and
// completion statistics. Every function is pure: "today" is always passed in
// and inputs are never mutated.
package engine

import (
	"sort"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

// History is an immutable, de-duplicated view over a habit's completion days.
type History struct {
	days   map[domain.Date]struct{}
	sorted []domain.Date
}

func NewHistory(completions []domain.Completion) History {
	days := make(map[domain.Date]struct{}, len(completions))
	sorted := make([]domain.Date, 0, len(completions))

	for _, c := range completions {
		if c.Date.IsZero() {
			continue
		}
		if _, ok := days[c.Date]; ok {
			continue
		}
		days[c.Date] = struct{}{}
		sorted = append(sorted, c.Date)
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})

	return History{days: days, sorted: sorted}
}

func (h History) Has(d domain.Date) bool {
	_, ok := h.days[d]
	return ok
}

func (h History) Len() int { return len(h.sorted) }

// LatestOnOrBefore returns the most recent completion day that is not after d.
func (h History) LatestOnOrBefore(d domain.Date) (domain.Date, bool) {
	i := sort.Search(len(h.sorted), func(i int) bool {
		return h.sorted[i].After(d)
	})
	if i == 0 {
		return domain.Date{}, false
	}
	return h.sorted[i-1], true
}
