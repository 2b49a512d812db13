package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jobdeck/jobdeck/internal/browser"
	"github.com/jobdeck/jobdeck/internal/model"
	"github.com/jobdeck/jobdeck/internal/skills"
)

const webSearchBaseURL = "https://www.google.com/search"

// Defaults for fields the result cards frequently omit.
const (
	defaultCompany  = "Company Not Specified"
	defaultLocation = "Remote/Various"
	defaultSnippet  = "No description available"
)

// ScrapeOutcome labels how much confidence a scrape pass deserves.
type ScrapeOutcome int

const (
	// OutcomeEmpty: neither the selector cascade nor the heuristic pass
	// produced listings.
	OutcomeEmpty ScrapeOutcome = iota
	// OutcomeFullMatch: a known card selector matched the page layout.
	OutcomeFullMatch
	// OutcomeHeuristic: the layout was unrecognized and listings were
	// inferred from heading-like elements. Approximate data.
	OutcomeHeuristic
)

func (o ScrapeOutcome) String() string {
	switch o {
	case OutcomeFullMatch:
		return "full_match"
	case OutcomeHeuristic:
		return "heuristic_fallback"
	default:
		return "empty"
	}
}

// cardSelectors is the ordered cascade of known result-card layouts. The
// first selector that yields any cards wins. Versioned by observation: the
// upstream markup changes without notice.
var cardSelectors = []string{
	"div.job_seen_beacon",
	"div.jobsearch-JobCard",
	"div.BjJfJf",
	"div[data-ved]",
	"div.g",
}

// Per-field selector variants tried in order within one card.
var (
	titleSelectors    = []string{"div.BjJfJf", "h3", "a.jobtitle", "a[data-ved] h3", "a[data-ved]"}
	companySelectors  = []string{"div.nJlQsc", "span.company", "div.company", "div[data-ved] div"}
	locationSelectors = []string{"div.Qk80Jf", "span.location", "div.location"}
	snippetSelectors  = []string{"div.HBvzbc", "span.summary", "div.summary"}
	linkSelectors     = []string{"a.pMhGee", "a.jobtitle", "a[data-ved]", "a"}
)

// WebSearchAdapter scrapes a public search-results page for job listings via
// a headless browser. Best structural guess: layouts drift, so every scrape
// pass reports a confidence outcome.
type WebSearchAdapter struct {
	driver browser.Driver
	logger *slog.Logger
}

// NewWebSearchAdapter creates a scrape adapter over the given browser driver.
func NewWebSearchAdapter(driver browser.Driver, logger *slog.Logger) *WebSearchAdapter {
	return &WebSearchAdapter{driver: driver, logger: logger}
}

// Source identifies this adapter.
func (a *WebSearchAdapter) Source() model.Source {
	return model.SourceWebSearch
}

// Search drives one exclusive browser session against a search-results page
// built from the query. The session is torn down on every exit path.
func (a *WebSearchAdapter) Search(ctx context.Context, query, location string, limit int) ([]model.JobListing, error) {
	jobs, outcome, err := a.Scrape(ctx, query, location, limit)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("websearch scrape finished",
		"query", query,
		"outcome", outcome.String(),
		"listings", len(jobs),
	)
	return jobs, nil
}

// Scrape is Search with the confidence outcome exposed: it parses result
// cards through the selector cascade and falls back to a heuristic pass over
// raw markup when no cascade selector matches.
func (a *WebSearchAdapter) Scrape(ctx context.Context, query, location string, limit int) ([]model.JobListing, ScrapeOutcome, error) {
	searchURL := buildWebSearchURL(query, location)

	session, err := a.driver.NewSession(ctx)
	if err != nil {
		return nil, OutcomeEmpty, fmt.Errorf("websearch for %q: %w", query, err)
	}
	defer session.Close()

	if err := session.Navigate(searchURL, ""); err != nil {
		return nil, OutcomeEmpty, fmt.Errorf("websearch for %q: %w", query, err)
	}

	markup, err := session.PageHTML()
	if err != nil {
		return nil, OutcomeEmpty, fmt.Errorf("websearch for %q: %w", query, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, OutcomeEmpty, &model.ParseError{Source: model.SourceWebSearch, Err: err}
	}

	jobs, outcome := a.parseCards(doc, searchURL, location, limit)
	if outcome == OutcomeEmpty {
		jobs = a.parseHeuristic(doc, query, limit)
		if len(jobs) > 0 {
			outcome = OutcomeHeuristic
		}
	}

	return jobs, outcome, nil
}

// parseCards walks the selector cascade and extracts one listing per card
// from the first layout variant that matches.
func (a *WebSearchAdapter) parseCards(doc *goquery.Document, searchURL, location string, limit int) ([]model.JobListing, ScrapeOutcome) {
	var cards *goquery.Selection
	for _, sel := range cardSelectors {
		found := doc.Find(sel)
		if found.Length() > 0 {
			a.logger.Debug("matched card selector", "selector", sel, "cards", found.Length())
			cards = found
			break
		}
	}
	if cards == nil {
		return nil, OutcomeEmpty
	}

	var jobs []model.JobListing
	cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
		title := firstText(card, titleSelectors...)
		if title == "" {
			// Last resort: the card's first line, if plausible.
			lines := strings.Split(strings.TrimSpace(card.Text()), "\n")
			if len(lines) == 0 || len(lines[0]) == 0 || len(lines[0]) >= 100 {
				return true
			}
			title = strings.TrimSpace(lines[0])
		}

		company := firstText(card, companySelectors...)
		if company == "" {
			company = defaultCompany
		}

		cardLocation := firstText(card, locationSelectors...)
		if cardLocation == "" {
			if location != "" {
				cardLocation = location
			} else {
				cardLocation = defaultLocation
			}
		}

		snippet := firstText(card, snippetSelectors...)
		if len(snippet) <= 20 {
			snippet = defaultSnippet
		}

		jobURL := searchURL
		for _, sel := range linkSelectors {
			if href, ok := card.Find(sel).First().Attr("href"); ok && strings.Contains(href, "http") {
				jobURL = href
				break
			}
		}

		jobs = append(jobs, model.JobListing{
			ID:              model.ScrapedID(model.SourceWebSearch, title, company),
			Title:           title,
			Company:         company,
			Location:        cardLocation,
			Description:     snippet,
			FullDescription: snippet,
			Source:          model.SourceWebSearch,
			URL:             jobURL,
			ApplicationURL:  jobURL,
			JobType:         skills.JobType(snippet),
			Salary:          "Not specified",
			PostedDate:      "Recently",
			Skills:          skills.ExtractFromJob(snippet),
		})

		return len(jobs) < limit
	})

	if len(jobs) == 0 {
		return nil, OutcomeEmpty
	}
	return jobs, OutcomeFullMatch
}

// parseHeuristic scans heading-like elements and infers a title/company/
// description triple from surrounding text. Produces approximate listings
// rather than failing outright.
func (a *WebSearchAdapter) parseHeuristic(doc *goquery.Document, query string, limit int) []model.JobListing {
	var jobs []model.JobListing

	doc.Find("h3, b, strong").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		title := strings.TrimSpace(heading.Text())
		if len(title) < 5 || len(title) > 100 {
			return true
		}

		// Company names tend to sit in a sibling of the heading's parent.
		company := defaultCompany
		heading.Parent().NextAll().EachWithBreak(func(_ int, sibling *goquery.Selection) bool {
			text := strings.TrimSpace(sibling.Text())
			if text != "" && len(text) > 5 && len(text) < 50 && text != title {
				company = text
				return false
			}
			return true
		})

		description := ""
		if container := heading.Closest("div"); container.Length() > 0 {
			all := strings.TrimSpace(container.Text())
			all = strings.ReplaceAll(all, title, "")
			all = strings.ReplaceAll(all, company, "")
			description = strings.TrimSpace(all)
		}
		if description == "" {
			description = fmt.Sprintf("Job opportunity for %s at %s", query, company)
		}

		jobs = append(jobs, model.JobListing{
			ID:              model.ScrapedID(model.SourceWebSearch, title, company),
			Title:           title,
			Company:         company,
			Location:        "Location not specified",
			Description:     truncateDescription(description),
			FullDescription: description,
			Source:          model.SourceWebSearch,
			URL:             "", // canonicalization substitutes the fallback URL
			JobType:         skills.JobType(description),
			Salary:          "Not specified",
			PostedDate:      "Recently",
			Skills:          skills.ExtractFromJob(description),
		})

		return len(jobs) < limit
	})

	return jobs
}

// firstText returns the first non-empty trimmed text among the selector
// variants.
func firstText(card *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if t := strings.TrimSpace(card.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

// buildWebSearchURL constructs the results-page URL with a job-oriented
// suffix term, folding in the location when given.
func buildWebSearchURL(query, location string) string {
	q := query + " jobs"
	if location != "" {
		q += " in " + location
	}
	return webSearchBaseURL + "?q=" + url.QueryEscape(q)
}
