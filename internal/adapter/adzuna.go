package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jobdeck/jobdeck/internal/model"
	"github.com/jobdeck/jobdeck/internal/skills"
)

const adzunaBaseURL = "https://api.adzuna.com/v1/api/jobs"

// adzunaResultsPerPageMax is the API's page size ceiling.
const adzunaResultsPerPageMax = 50

// usAliases selects the US region from free-text locations; anything else
// falls back to the default country.
var usAliases = []string{"us", "usa", "united states", "america"}

// adzunaJob represents a single entry in the Adzuna API response.
type adzunaJob struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Company        adzunaCompany `json:"company"`
	Location       adzunaPlace   `json:"location"`
	Description    string        `json:"description"`
	RedirectURL    string        `json:"redirect_url"`
	SalaryMin      float64       `json:"salary_min"`
	SalaryMax      float64       `json:"salary_max"`
	SalaryCurrency string        `json:"salary_currency"`
	Created        string        `json:"created"`
	ContractType   string        `json:"contract_type"`
}

type adzunaCompany struct {
	DisplayName string `json:"display_name"`
}

type adzunaPlace struct {
	DisplayName string `json:"display_name"`
}

// adzunaResponse is the top-level Adzuna search response.
type adzunaResponse struct {
	Results []adzunaJob `json:"results"`
}

// AdzunaAdapter fetches jobs from the Adzuna paid search API. Without
// credentials it is a no-op source.
type AdzunaAdapter struct {
	baseURL string
	appID   string
	appKey  string
	client  *http.Client
	now     func() time.Time // overridable for tests
}

// NewAdzunaAdapter creates an adapter with the given application credentials.
// Empty credentials are allowed; Search then short-circuits.
func NewAdzunaAdapter(appID, appKey string, client *http.Client) *AdzunaAdapter {
	return &AdzunaAdapter{
		baseURL: adzunaBaseURL,
		appID:   appID,
		appKey:  appKey,
		client:  client,
		now:     time.Now,
	}
}

// Source identifies this adapter.
func (a *AdzunaAdapter) Source() model.Source {
	return model.SourceAdzuna
}

// Configured reports whether both credential values are present.
func (a *AdzunaAdapter) Configured() bool {
	return a.appID != "" && a.appKey != ""
}

// Search queries the Adzuna search endpoint for the country inferred from the
// location text. Missing credentials are a capability gap, not a failure: the
// call is skipped entirely.
func (a *AdzunaAdapter) Search(ctx context.Context, query, location string, limit int) ([]model.JobListing, error) {
	if !a.Configured() {
		return nil, model.ErrCredentialsMissing
	}

	country := countryFor(location)

	perPage := limit
	if perPage > adzunaResultsPerPageMax {
		perPage = adzunaResultsPerPageMax
	}

	params := url.Values{}
	params.Set("app_id", a.appID)
	params.Set("app_key", a.appKey)
	params.Set("results_per_page", fmt.Sprintf("%d", perPage))
	params.Set("what", query)
	if location != "" && country == "us" {
		// A "City, ST" location narrows to the city part.
		params.Set("where", strings.TrimSpace(strings.Split(location, ",")[0]))
	}

	u := fmt.Sprintf("%s/%s/search/1?%s", a.baseURL, country, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("adzuna search for %q: %w", query, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adzuna search for %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("adzuna search for %q: unexpected status %d", query, resp.StatusCode),
		}
	}

	var aResp adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&aResp); err != nil {
		return nil, fmt.Errorf("adzuna search for %q: %w", query, err)
	}

	jobs := make([]model.JobListing, 0, min(len(aResp.Results), limit))
	for _, aj := range aResp.Results {
		if len(jobs) >= limit {
			break
		}

		description := extractText(aj.Description)

		jobLocation := aj.Location.DisplayName
		if jobLocation == "" {
			jobLocation = location
		}

		jobs = append(jobs, model.JobListing{
			ID:              model.ListingID(model.SourceAdzuna, aj.ID),
			Title:           aj.Title,
			Company:         aj.Company.DisplayName,
			Location:        jobLocation,
			Description:     truncateDescription(description),
			FullDescription: description,
			Source:          model.SourceAdzuna,
			URL:             aj.RedirectURL,
			ApplicationURL:  aj.RedirectURL,
			JobType:         aj.ContractType,
			Salary:          formatSalary(aj.SalaryMin, aj.SalaryMax, aj.SalaryCurrency),
			PostedDate:      a.relativePostedDate(aj.Created),
			Skills:          skills.ExtractFromJob(description),
		})
	}

	return jobs, nil
}

// countryFor picks the Adzuna country code from free-text location.
func countryFor(location string) string {
	lower := strings.ToLower(location)
	for _, alias := range usAliases {
		if strings.Contains(lower, alias) {
			return "us"
		}
	}
	return "gb"
}

// formatSalary builds a human-readable range from min/max bounds and a
// currency symbol, or "Not specified" when bounds are absent.
func formatSalary(minSalary, maxSalary float64, currency string) string {
	if minSalary <= 0 || maxSalary <= 0 {
		return "Not specified"
	}
	if currency == "" {
		currency = "$"
	}
	return fmt.Sprintf("%s%s - %s%s",
		currency, groupThousands(int(minSalary)),
		currency, groupThousands(int(maxSalary)),
	)
}

// relativePostedDate turns the API's creation timestamp into "N days ago"
// ("Today" for same-day posts), or "Recently" when unparseable.
func (a *AdzunaAdapter) relativePostedDate(created string) string {
	if created == "" {
		return "Recently"
	}
	t, err := time.Parse("2006-01-02T15:04:05Z", created)
	if err != nil {
		return "Recently"
	}
	days := int(a.now().Sub(t).Hours() / 24)
	if days <= 0 {
		return "Today"
	}
	return fmt.Sprintf("%d days ago", days)
}
