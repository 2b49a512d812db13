// Package skills holds the static skill lexicon, the keyword extractor used
// by every source adapter, and the shared resume-to-job match scorer.
package skills

import (
	"math"
	"strings"
)

// Extraction caps. Job descriptions keep fewer terms than full resume text.
const (
	MaxJobSkills    = 15
	MaxResumeSkills = 20
)

// Extract returns the lexicon terms contained in text, case-insensitively,
// capped at max. Matches preserve lexicon order. Deterministic, no NLP.
func Extract(text string, max int) []string {
	if text == "" || max <= 0 {
		return nil
	}

	lower := strings.ToLower(text)
	var found []string
	for _, skill := range lexicon {
		if strings.Contains(lower, strings.ToLower(skill)) {
			found = append(found, skill)
			if len(found) >= max {
				break
			}
		}
	}
	return found
}

// ExtractFromJob extracts skills from job description text with the job cap.
func ExtractFromJob(text string) []string {
	return Extract(text, MaxJobSkills)
}

// ExtractFromResume extracts skills from resume text with the resume cap.
func ExtractFromResume(text string) []string {
	return Extract(text, MaxResumeSkills)
}

// Match computes the percentage overlap between a candidate's skills and a
// job's required skills. Both sets are compared lowercase; matching skills are
// returned in the job set's order (lowercased). The score is
// round(100 * |matching| / max(|jobSkills|, 1)).
//
// This is the single scoring implementation shared by the job-search path and
// the ATS-analysis path.
func Match(resumeSkills, jobSkills []string) (score int, matching []string) {
	resumeSet := make(map[string]struct{}, len(resumeSkills))
	for _, s := range resumeSkills {
		resumeSet[strings.ToLower(s)] = struct{}{}
	}

	seen := make(map[string]struct{}, len(jobSkills))
	jobCount := 0
	for _, s := range jobSkills {
		ls := strings.ToLower(s)
		if _, dup := seen[ls]; dup {
			continue
		}
		seen[ls] = struct{}{}
		jobCount++
		if _, ok := resumeSet[ls]; ok {
			matching = append(matching, ls)
		}
	}

	denom := jobCount
	if denom < 1 {
		denom = 1
	}
	score = int(math.Round(100 * float64(len(matching)) / float64(denom)))
	return score, matching
}

// Missing returns the job skills absent from the resume set, lowercased,
// preserving the job set's order. Consumed by the ATS-analysis path.
func Missing(resumeSkills, jobSkills []string) []string {
	resumeSet := make(map[string]struct{}, len(resumeSkills))
	for _, s := range resumeSkills {
		resumeSet[strings.ToLower(s)] = struct{}{}
	}

	var missing []string
	seen := make(map[string]struct{}, len(jobSkills))
	for _, s := range jobSkills {
		ls := strings.ToLower(s)
		if _, dup := seen[ls]; dup {
			continue
		}
		seen[ls] = struct{}{}
		if _, ok := resumeSet[ls]; !ok {
			missing = append(missing, ls)
		}
	}
	return missing
}

// JobType classifies a description into an employment type keyword,
// defaulting to Full-time.
func JobType(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "full-time") || strings.Contains(lower, "full time"):
		return "Full-time"
	case strings.Contains(lower, "part-time") || strings.Contains(lower, "part time"):
		return "Part-time"
	case strings.Contains(lower, "contract"):
		return "Contract"
	case strings.Contains(lower, "freelance"):
		return "Freelance"
	case strings.Contains(lower, "intern"):
		return "Internship"
	case strings.Contains(lower, "temporary") || strings.Contains(lower, "temp"):
		return "Temporary"
	default:
		return "Full-time"
	}
}
