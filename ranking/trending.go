// Package ranking holds the pure scoring and display helpers behind project
// discovery: the trending score and the canonical tag casing table.
package ranking

import (
	"sort"
	"time"
)

const (
	monthlyViewWeight = 0.7
	recencyWindow     = 30 * 24 * time.Hour
	recencyWeight     = 3.0
)

// TrendingScore combines a project's view count for the current calendar
// month with how recently it was created:
//
//	score = monthlyViews*0.7 + ((createdAt - now + 30d) / 1d) * 3
//
// The recency bonus decays linearly to zero over 30 days and goes negative
// beyond that, so a stale project needs proportionally more monthly views to
// keep ranking. A project with zero monthly views still competes on recency
// alone.
func TrendingScore(monthlyViews int64, createdAt, now time.Time) float64 {
	age := createdAt.Sub(now) + recencyWindow
	recencyBonus := age.Hours() / 24 * recencyWeight
	return float64(monthlyViews)*monthlyViewWeight + recencyBonus
}

// Candidate is one project entering the trending sort.
type Candidate struct {
	ProjectID    uint
	CreatedAt    time.Time
	MonthlyViews int64
}

// SortByTrending orders candidates by descending trending score, in place.
// The sort is stable: candidates with equal scores keep their incoming
// (query) order rather than being re-shuffled between requests.
func SortByTrending(candidates []Candidate, now time.Time) {
	scores := make(map[uint]float64, len(candidates))
	for _, c := range candidates {
		scores[c.ProjectID] = TrendingScore(c.MonthlyViews, c.CreatedAt, now)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return scores[candidates[i].ProjectID] > scores[candidates[j].ProjectID]
	})
}
