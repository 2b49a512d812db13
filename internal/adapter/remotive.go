package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jobdeck/jobdeck/internal/model"
	"github.com/jobdeck/jobdeck/internal/skills"
)

const remotiveBaseURL = "https://remotive.com/api/remote-jobs"

// remotiveJob represents a single entry in the Remotive API response.
type remotiveJob struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	CompanyName     string `json:"company_name"`
	Location        string `json:"candidate_required_location"`
	Description     string `json:"description"`
	URL             string `json:"url"`
	JobType         string `json:"job_type"`
	Salary          string `json:"salary"`
	PublicationDate string `json:"publication_date"`
}

// remotiveResponse is the top-level Remotive API response.
type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

// RemotiveAdapter fetches remote jobs from the Remotive public API.
type RemotiveAdapter struct {
	baseURL string
	client  *http.Client
}

// NewRemotiveAdapter creates an adapter for the Remotive remote-jobs API.
func NewRemotiveAdapter(client *http.Client) *RemotiveAdapter {
	return &RemotiveAdapter{baseURL: remotiveBaseURL, client: client}
}

// Source identifies this adapter.
func (a *RemotiveAdapter) Source() model.Source {
	return model.SourceRemotive
}

// Search issues one GET with a `search` parameter and normalizes each entry
// into the canonical listing shape, bounded by limit.
func (a *RemotiveAdapter) Search(ctx context.Context, query, location string, limit int) ([]model.JobListing, error) {
	u := a.baseURL
	if query != "" {
		u += "?search=" + url.QueryEscape(query)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("remotive search for %q: %w", query, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remotive search for %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("remotive search for %q: unexpected status %d", query, resp.StatusCode),
		}
	}

	var rResp remotiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&rResp); err != nil {
		return nil, fmt.Errorf("remotive search for %q: %w", query, err)
	}

	jobs := make([]model.JobListing, 0, min(len(rResp.Jobs), limit))
	for _, rj := range rResp.Jobs {
		if len(jobs) >= limit {
			break
		}

		description := extractText(rj.Description)
		jobLocation := rj.Location
		if jobLocation == "" {
			if location != "" {
				jobLocation = location
			} else {
				jobLocation = "Remote"
			}
		}

		salary := rj.Salary
		if salary == "" {
			salary = "Not specified"
		}

		jobs = append(jobs, model.JobListing{
			ID:              model.ListingID(model.SourceRemotive, strconv.FormatInt(rj.ID, 10)),
			Title:           rj.Title,
			Company:         rj.CompanyName,
			Location:        jobLocation,
			Description:     truncateDescription(description),
			FullDescription: description,
			Source:          model.SourceRemotive,
			URL:             rj.URL,
			ApplicationURL:  rj.URL,
			JobType:         rj.JobType,
			Salary:          salary,
			PostedDate:      postedOrRecently(rj.PublicationDate),
			Skills:          skills.ExtractFromJob(description),
		})
	}

	return jobs, nil
}

func postedOrRecently(date string) string {
	if date == "" {
		return "Recently"
	}
	return date
}
