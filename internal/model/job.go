package model

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
)

// Source identifies one of the supported external job sources.
type Source string

const (
	SourceRemotive    Source = "remotive"    // remote-jobs REST API
	SourceAdzuna      Source = "adzuna"      // paid search REST API, needs credentials
	SourceWebSearch   Source = "websearch"   // scraped general search results
	SourceLegacyBoard Source = "legacyboard" // legacy job board, browser-driven (best effort)
)

// AllSources returns every supported source in default priority order.
func AllSources() []Source {
	return []Source{SourceRemotive, SourceAdzuna, SourceWebSearch, SourceLegacyBoard}
}

// ParseSource maps a user-supplied name to a Source.
func ParseSource(name string) (Source, bool) {
	switch Source(strings.ToLower(strings.TrimSpace(name))) {
	case SourceRemotive:
		return SourceRemotive, true
	case SourceAdzuna:
		return SourceAdzuna, true
	case SourceWebSearch:
		return SourceWebSearch, true
	case SourceLegacyBoard:
		return SourceLegacyBoard, true
	}
	return "", false
}

// JobListing is the canonical listing shape shared by every source.
type JobListing struct {
	ID              string // source-prefixed, deterministic (never random)
	Title           string
	Company         string
	Location        string
	Description     string // display copy, truncated to 500 chars
	FullDescription string // untruncated original
	Source          Source
	URL             string
	ApplicationURL  string
	JobType         string
	Salary          string
	PostedDate      string
	Skills          []string // lexicon order, best effort
	MatchScore      int      // 0..100, set only when resume skills are supplied
	MatchingSkills  []string // set alongside MatchScore
	Scored          bool     // whether MatchScore/MatchingSkills are populated
}

// ListingID builds a deterministic source-prefixed ID from an upstream identifier.
func ListingID(source Source, originalID string) string {
	return fmt.Sprintf("%s_%s", source, originalID)
}

// ScrapedID builds a deterministic ID for scraped listings that carry no
// upstream identifier, hashing title and company instead.
func ScrapedID(source Source, title, company string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(title)))
	h.Write([]byte("|"))
	h.Write([]byte(strings.ToLower(company)))
	return fmt.Sprintf("%s_%08x", source, h.Sum32())
}

// SearchRequest carries the parameters of one aggregation call.
type SearchRequest struct {
	Query        string
	Location     string
	Limit        int
	Sources      []Source // empty means all four
	ResumeSkills []string // optional, enables match scoring
}

// JobSource fetches listings from one external source. Implementations map
// the source's native format into JobListing and report faults as errors;
// the aggregator converts any error into an empty contribution.
type JobSource interface {
	Search(ctx context.Context, query, location string, limit int) ([]JobListing, error)
	Source() Source
}
