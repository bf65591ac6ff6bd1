package models

// AnalyticsOptions is a read-only snapshot of the filters available for the
// quiz analytics view. Fetched per page load; never mutated locally.
type AnalyticsOptions struct {
	Sessions        []string
	Sources         []string
	LatestSessionID string
}

// AnalyticsScope selects the aggregation window of the quiz analytics view.
type AnalyticsScope string

const (
	ScopeSession  AnalyticsScope = "session"
	ScopeOverall  AnalyticsScope = "overall"
	ScopeDocument AnalyticsScope = "document"
	ScopeRecent   AnalyticsScope = "recent"
)

// StoreStats summarizes the student's slice of the vector store.
type StoreStats struct {
	Docs    int
	Sources []SourceStat
}

// SourceStat is per-source chunk bookkeeping inside StoreStats.
type SourceStat struct {
	Source           string
	Chunks           int
	LatestIngestedAt string
}

// DashboardMetric is one headline figure on the dashboard.
type DashboardMetric struct {
	ID              string
	Label           string
	Value           string
	Change          float64
	ChangeDirection string
	HelperText      string
}

// DashboardActivity is one recent-activity row on the dashboard.
type DashboardActivity struct {
	ID          string
	Title       string
	Description string
	Category    string
	Timestamp   string
}

// DashboardOverview is the aggregated dashboard payload.
type DashboardOverview struct {
	Metrics  []DashboardMetric
	Activity []DashboardActivity
}
