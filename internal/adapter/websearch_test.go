package adapter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/jobdeck/jobdeck/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWebSearchScrape_CardLayout(t *testing.T) {
	page := `<html><body>
		<div class="job_seen_beacon">
			<h3>Senior Python Developer</h3>
			<span class="company">Acme Corp</span>
			<span class="location">New York, NY</span>
			<span class="summary">Build backend services in Python and Django for our platform team.</span>
			<a class="jobtitle" href="https://jobs.example/python-dev">Apply</a>
		</div>
		<div class="job_seen_beacon">
			<h3>Data Engineer</h3>
			<span class="company">Globex</span>
			<span class="summary">Design pipelines with SQL and Apache Spark at serious scale.</span>
		</div>
	</body></html>`

	searchURL := buildWebSearchURL("python", "New York")
	driver := &fakeDriver{pages: map[string]string{searchURL: page}}
	a := NewWebSearchAdapter(driver, discardLogger())

	jobs, outcome, err := a.Scrape(context.Background(), "python", "New York", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeFullMatch {
		t.Fatalf("expected full_match outcome, got %s", outcome)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	j := jobs[0]
	if j.Title != "Senior Python Developer" {
		t.Errorf("unexpected title %q", j.Title)
	}
	if j.Company != "Acme Corp" {
		t.Errorf("unexpected company %q", j.Company)
	}
	if j.Location != "New York, NY" {
		t.Errorf("unexpected location %q", j.Location)
	}
	if j.URL != "https://jobs.example/python-dev" {
		t.Errorf("unexpected URL %q", j.URL)
	}
	if j.Source != model.SourceWebSearch {
		t.Errorf("unexpected source %s", j.Source)
	}

	// Second card has no location and no link: location falls back to the
	// requested one, URL to the results page itself.
	j = jobs[1]
	if j.Location != "New York" {
		t.Errorf("expected requested location fallback, got %q", j.Location)
	}
	if j.URL != searchURL {
		t.Errorf("expected results page URL fallback, got %q", j.URL)
	}

	if !driver.closedAll() {
		t.Error("browser session was not closed")
	}
}

func TestWebSearchScrape_LimitBounds(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 6; i++ {
		b.WriteString(`<div class="job_seen_beacon"><h3>Engineer Role `)
		b.WriteByte(byte('A' + i))
		b.WriteString(`</h3><span class="company">Acme</span></div>`)
	}
	b.WriteString("</body></html>")

	searchURL := buildWebSearchURL("engineer", "")
	driver := &fakeDriver{pages: map[string]string{searchURL: b.String()}}
	a := NewWebSearchAdapter(driver, discardLogger())

	jobs, _, err := a.Scrape(context.Background(), "engineer", "", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs with limit 2, got %d", len(jobs))
	}
}

func TestWebSearchScrape_HeuristicFallback(t *testing.T) {
	// No cascade selector matches this layout; the heading pass has to infer.
	page := `<html><body>
		<div>
			<div><h3>Frontend Developer Wanted</h3></div>
			<div>Globex Industries</div>
		</div>
	</body></html>`

	searchURL := buildWebSearchURL("frontend", "")
	driver := &fakeDriver{pages: map[string]string{searchURL: page}}
	a := NewWebSearchAdapter(driver, discardLogger())

	jobs, outcome, err := a.Scrape(context.Background(), "frontend", "", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeHeuristic {
		t.Fatalf("expected heuristic outcome, got %s", outcome)
	}
	if len(jobs) == 0 {
		t.Fatal("expected at least one inferred listing")
	}
	if jobs[0].Title != "Frontend Developer Wanted" {
		t.Errorf("unexpected title %q", jobs[0].Title)
	}
	if jobs[0].Company != "Globex Industries" {
		t.Errorf("unexpected company %q", jobs[0].Company)
	}
	if jobs[0].URL != "" {
		t.Errorf("heuristic listings carry no URL, got %q", jobs[0].URL)
	}
}

func TestWebSearchScrape_EmptyPage(t *testing.T) {
	searchURL := buildWebSearchURL("python", "")
	driver := &fakeDriver{pages: map[string]string{searchURL: "<html><body></body></html>"}}
	a := NewWebSearchAdapter(driver, discardLogger())

	jobs, outcome, err := a.Scrape(context.Background(), "python", "", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeEmpty {
		t.Errorf("expected empty outcome, got %s", outcome)
	}
	if len(jobs) != 0 {
		t.Errorf("expected no jobs, got %d", len(jobs))
	}
}

func TestWebSearchSearch_SessionError(t *testing.T) {
	driver := &fakeDriver{sessionErr: errors.New("browser unavailable")}
	a := NewWebSearchAdapter(driver, discardLogger())

	_, err := a.Search(context.Background(), "python", "", 10)
	if err == nil {
		t.Fatal("expected error when session creation fails")
	}
}

func TestBuildWebSearchURL(t *testing.T) {
	got := buildWebSearchURL("python developer", "New York")
	if !strings.Contains(got, "python+developer+jobs+in+New+York") {
		t.Errorf("unexpected URL %q", got)
	}

	got = buildWebSearchURL("golang", "")
	if !strings.Contains(got, "golang+jobs") || strings.Contains(got, "+in+") {
		t.Errorf("unexpected URL %q", got)
	}
}
