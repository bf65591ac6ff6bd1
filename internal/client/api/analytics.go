package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/smartcampus/assistant-cli/internal/client/models"
)

type analyticsOptionsDTO struct {
	Sessions        []looseID `json:"sessions"`
	Sources         []string  `json:"sources"`
	LatestSessionID looseID   `json:"latestSessionId"`
}

// AnalyticsOptions fetches the filter snapshot for the quiz analytics view.
func (c *HTTPClient) AnalyticsOptions(ctx context.Context) (*models.AnalyticsOptions, error) {
	var dto analyticsOptionsDTO
	if err := c.do(ctx, call{method: http.MethodGet, path: "/analytics/quiz/options", out: &dto}); err != nil {
		return nil, err
	}

	opts := &models.AnalyticsOptions{
		Sources:         dto.Sources,
		LatestSessionID: string(dto.LatestSessionID),
	}
	for _, s := range dto.Sessions {
		opts.Sessions = append(opts.Sessions, string(s))
	}
	return opts, nil
}

// QuizViewURL builds the URL of the embedded quiz analytics visualization.
// The view is rendered server-side in a context that cannot send headers, so
// the bearer token rides along as a query parameter.
func (c *HTTPClient) QuizViewURL(scope models.AnalyticsScope, sessionIDs []string, source string) string {
	q := url.Values{}
	q.Set("scope", string(scope))
	for _, id := range sessionIDs {
		q.Add("sessionId", id)
	}
	if source != "" {
		q.Set("source", source)
	}
	if tok := c.token(); tok != "" {
		q.Set("token", tok)
	}
	return c.requestURL("/analytics/quiz", q)
}

type sourceStatDTO struct {
	Source           string `json:"source"`
	Chunks           int    `json:"chunks"`
	LatestIngestedAt string `json:"latest_ingested_at"`
}

type statsDTO struct {
	Docs    int             `json:"docs"`
	Sources []sourceStatDTO `json:"sources"`
}

func (d statsDTO) toModel() *models.StoreStats {
	stats := &models.StoreStats{Docs: d.Docs}
	for _, s := range d.Sources {
		stats.Sources = append(stats.Sources, models.SourceStat{
			Source:           s.Source,
			Chunks:           s.Chunks,
			LatestIngestedAt: s.LatestIngestedAt,
		})
	}
	return stats
}

// Stats returns the student-scoped vector store statistics.
func (c *HTTPClient) Stats(ctx context.Context) (*models.StoreStats, error) {
	var dto statsDTO
	if err := c.do(ctx, call{method: http.MethodGet, path: "/stats", out: &dto}); err != nil {
		return nil, err
	}
	return dto.toModel(), nil
}

type dashboardMetricDTO struct {
	ID              string  `json:"id"`
	Label           string  `json:"label"`
	Value           string  `json:"value"`
	Change          float64 `json:"change"`
	ChangeDirection string  `json:"changeDirection"`
	HelperText      string  `json:"helperText"`
}

type dashboardActivityDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Timestamp   string `json:"timestamp"`
}

type dashboardOverviewDTO struct {
	Metrics  []dashboardMetricDTO   `json:"metrics"`
	Activity []dashboardActivityDTO `json:"activity"`
}

// DashboardOverview returns the aggregated dashboard payload for the
// current student.
func (c *HTTPClient) DashboardOverview(ctx context.Context) (*models.DashboardOverview, error) {
	var dto dashboardOverviewDTO
	if err := c.do(ctx, call{method: http.MethodGet, path: "/dashboard/overview", out: &dto}); err != nil {
		return nil, err
	}

	overview := &models.DashboardOverview{}
	for _, m := range dto.Metrics {
		overview.Metrics = append(overview.Metrics, models.DashboardMetric{
			ID:              m.ID,
			Label:           m.Label,
			Value:           m.Value,
			Change:          m.Change,
			ChangeDirection: m.ChangeDirection,
			HelperText:      m.HelperText,
		})
	}
	for _, a := range dto.Activity {
		overview.Activity = append(overview.Activity, models.DashboardActivity{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Category:    a.Category,
			Timestamp:   a.Timestamp,
		})
	}
	return overview, nil
}
