// Package canon discards invalid listings, merges duplicates, fills defaults,
// and assigns fallback URLs. It runs on the merged output of all sources,
// before ranking.
package canon

import (
	"strings"

	"github.com/jobdeck/jobdeck/internal/model"
)

// Defaults substituted for missing fields during canonicalization.
const (
	DefaultDescription = "No description available"
	DefaultLocation    = "Remote/Various"
	DefaultPostedDate  = "Recently"
	DefaultJobType     = "Full-time"
)

// Deduplicate drops listings missing a title or company, collapses duplicates
// by case-insensitive (title, company) with first occurrence winning, and
// canonicalizes every survivor in place.
func Deduplicate(listings []model.JobListing) []model.JobListing {
	seen := make(map[string]struct{}, len(listings))
	out := make([]model.JobListing, 0, len(listings))

	for _, job := range listings {
		if job.Title == "" || job.Company == "" {
			continue
		}

		key := strings.ToLower(job.Title) + "|" + strings.ToLower(job.Company)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		out = append(out, Canonicalize(job))
	}

	return out
}

// Canonicalize fills defaults and guarantees resolvable URLs on a single
// listing. Safe to call on already-canonical listings.
func Canonicalize(job model.JobListing) model.JobListing {
	if !navigable(job.URL) {
		job.URL = FallbackURL(job.Title, job.Company)
	}
	if !navigable(job.ApplicationURL) {
		job.ApplicationURL = job.URL
	}

	if job.Description == "" {
		job.Description = DefaultDescription
	}
	if job.Location == "" {
		job.Location = DefaultLocation
	}
	if job.Skills == nil {
		job.Skills = []string{}
	}
	if job.PostedDate == "" {
		job.PostedDate = DefaultPostedDate
	}
	if job.JobType == "" {
		job.JobType = DefaultJobType
	}

	return job
}

// FallbackURL builds a search-engine query URL from title and company, used
// whenever a source provides no navigable link. Spaces become "+".
func FallbackURL(title, company string) string {
	titleSlug := strings.ReplaceAll(title, " ", "+")
	companySlug := strings.ReplaceAll(company, " ", "+")
	return "https://www.google.com/search?q=" + titleSlug + "+" + companySlug + "+job+apply"
}

// navigable reports whether a source-provided URL can actually be followed.
// Placeholders ("#") and javascript: pseudo-links cannot.
func navigable(url string) bool {
	if url == "" || url == "#" {
		return false
	}
	return !strings.HasPrefix(strings.ToLower(url), "javascript:")
}
