// Package rank orders merged listings by query/title affinity and listing
// completeness.
package rank

import (
	"sort"
	"strings"

	"github.com/jobdeck/jobdeck/internal/model"
)

// Score computes the relevance of a listing against the query terms:
// 10 per query term present in the lowercased title, +5 for a non-empty skill
// set, +3 for a known salary, +2 for a substantial full description.
func Score(job model.JobListing, queryTerms []string) int {
	title := strings.ToLower(job.Title)

	score := 0
	for _, term := range queryTerms {
		if strings.Contains(title, term) {
			score += 10
		}
	}

	if len(job.Skills) > 0 {
		score += 5
	}
	if job.Salary != "" && job.Salary != "Not specified" {
		score += 3
	}
	if len(job.FullDescription) > 100 {
		score += 2
	}

	return score
}

// Sort orders listings by descending relevance score. The sort is stable:
// ties keep their insertion order, which preserves source priority.
func Sort(listings []model.JobListing, query string) {
	terms := Terms(query)
	sort.SliceStable(listings, func(i, j int) bool {
		return Score(listings[i], terms) > Score(listings[j], terms)
	})
}

// Terms splits a query into lowercase terms for scoring.
func Terms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}
