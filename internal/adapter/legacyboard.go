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

const legacyBoardBaseURL = "https://jobs.github.com/positions"

// LegacyBoardAdapter scrapes a legacy job board whose public API is
// effectively discontinued. Best-effort, deprecated source: it stays in the
// default set but any structural drift degrades it to an empty contribution.
//
// The scrape is two-step: the listings page yields title/company/location per
// entry, then each entry's detail page is visited for the full description
// before returning to the listing. Navigation cost is capped by limit.
type LegacyBoardAdapter struct {
	baseURL string
	driver  browser.Driver
	logger  *slog.Logger
}

// NewLegacyBoardAdapter creates the adapter over the given browser driver.
func NewLegacyBoardAdapter(driver browser.Driver, logger *slog.Logger) *LegacyBoardAdapter {
	return &LegacyBoardAdapter{baseURL: legacyBoardBaseURL, driver: driver, logger: logger}
}

// Source identifies this adapter.
func (a *LegacyBoardAdapter) Source() model.Source {
	return model.SourceLegacyBoard
}

// Search drives one exclusive browser session through the listings page and,
// per entry, its detail page. A failing entry is skipped, not fatal; the
// session is torn down on every exit path.
func (a *LegacyBoardAdapter) Search(ctx context.Context, query, location string, limit int) ([]model.JobListing, error) {
	listURL := a.listingsURL(query, location)

	session, err := a.driver.NewSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("legacyboard search for %q: %w", query, err)
	}
	defer session.Close()

	entries, err := a.collectEntries(session, listURL, limit)
	if err != nil {
		return nil, err
	}

	jobs := make([]model.JobListing, 0, len(entries))
	for _, e := range entries {
		if ctx.Err() != nil {
			break
		}

		description, err := a.fetchDescription(session, e.url, listURL)
		if err != nil {
			a.logger.Warn("skipping legacy board entry",
				"title", e.title,
				"error", err,
			)
			continue
		}

		jobs = append(jobs, model.JobListing{
			ID:              model.ScrapedID(model.SourceLegacyBoard, e.title, e.company),
			Title:           e.title,
			Company:         e.company,
			Location:        e.location,
			Description:     truncateDescription(description),
			FullDescription: description,
			Source:          model.SourceLegacyBoard,
			URL:             e.url,
			ApplicationURL:  e.url,
			JobType:         skills.JobType(description),
			Salary:          "Not specified",
			PostedDate:      "Recently",
			Skills:          skills.ExtractFromJob(description),
		})
	}

	return jobs, nil
}

type boardEntry struct {
	title    string
	company  string
	location string
	url      string
}

// collectEntries loads the listings page and extracts up to limit entries.
func (a *LegacyBoardAdapter) collectEntries(session browser.Session, listURL string, limit int) ([]boardEntry, error) {
	if err := session.Navigate(listURL, ".job"); err != nil {
		return nil, fmt.Errorf("legacyboard listings page: %w", err)
	}

	markup, err := session.PageHTML()
	if err != nil {
		return nil, fmt.Errorf("legacyboard listings page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, &model.ParseError{Source: model.SourceLegacyBoard, Err: err}
	}

	var entries []boardEntry
	doc.Find(".job").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		titleLink := card.Find(".title h4 a").First()
		title := strings.TrimSpace(titleLink.Text())
		href, _ := titleLink.Attr("href")
		company := strings.TrimSpace(card.Find(".company").First().Text())
		jobLocation := strings.TrimSpace(card.Find(".location").First().Text())

		if title == "" || href == "" {
			return true
		}

		entries = append(entries, boardEntry{
			title:    title,
			company:  company,
			location: jobLocation,
			url:      absoluteURL(listURL, href),
		})
		return len(entries) < limit
	})

	return entries, nil
}

// fetchDescription performs the detail-page navigation for one entry and
// returns to the listings page afterwards so the next entry can proceed.
func (a *LegacyBoardAdapter) fetchDescription(session browser.Session, detailURL, listURL string) (string, error) {
	if err := session.Navigate(detailURL, ".job-description"); err != nil {
		return "", fmt.Errorf("detail page: %w", err)
	}

	markup, err := session.PageHTML()
	if err != nil {
		return "", fmt.Errorf("detail page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("detail page: %w", err)
	}

	description := strings.TrimSpace(doc.Find(".job-description").First().Text())
	if description == "" {
		return "", fmt.Errorf("detail page: description not found")
	}

	// Back to the listings page; the next entry navigates from there.
	if err := session.Navigate(listURL, ".job"); err != nil {
		return "", fmt.Errorf("returning to listings: %w", err)
	}

	return description, nil
}

// listingsURL builds the board's search URL from query and location.
func (a *LegacyBoardAdapter) listingsURL(query, location string) string {
	params := url.Values{}
	if query != "" {
		params.Set("description", query)
	}
	if location != "" {
		params.Set("location", location)
	}
	if len(params) == 0 {
		return a.baseURL
	}
	return a.baseURL + "?" + params.Encode()
}

// absoluteURL resolves href against the page it appeared on.
func absoluteURL(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
