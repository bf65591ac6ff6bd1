package services

import (
	"context"

	"github.com/smartcampus/assistant-cli/internal/client/api"
	"github.com/smartcampus/assistant-cli/internal/client/models"
	"github.com/smartcampus/assistant-cli/internal/logging"
	"golang.org/x/sync/errgroup"
)

// DashboardData carries the dashboard panels. Panels load and fail
// independently; a nil pointer with its Err set means that panel is
// unavailable while the rest of the page still renders.
type DashboardData struct {
	Overview    *models.DashboardOverview
	OverviewErr error

	Stats    *models.StoreStats
	StatsErr error

	Analytics    *models.AnalyticsOptions
	AnalyticsErr error
}

// DashboardService aggregates the dashboard page from its backend sources.
type DashboardService interface {
	// Load fetches all panels concurrently. It returns an error only when
	// every panel failed, which the caller should treat as the page being
	// unreachable rather than partially degraded.
	Load(ctx context.Context) (*DashboardData, error)
}

type dashboardService struct {
	client api.Client
	log    logging.Logger
}

func NewDashboardService(client api.Client, log logging.Logger) DashboardService {
	if log == nil {
		log = logging.Discard()
	}
	return &dashboardService{client: client, log: log}
}

func (s *dashboardService) Load(ctx context.Context) (*DashboardData, error) {
	var data DashboardData

	// Panel errors are recorded, never returned, so one slow or failing
	// source does not cancel its siblings.
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data.Overview, data.OverviewErr = s.client.DashboardOverview(ctx)
		return nil
	})
	g.Go(func() error {
		data.Stats, data.StatsErr = s.client.Stats(ctx)
		return nil
	})
	g.Go(func() error {
		data.Analytics, data.AnalyticsErr = s.client.AnalyticsOptions(ctx)
		return nil
	})
	_ = g.Wait()

	for name, err := range map[string]error{
		"overview":  data.OverviewErr,
		"stats":     data.StatsErr,
		"analytics": data.AnalyticsErr,
	} {
		if err != nil {
			s.log.Warn(ctx, "dashboard panel failed", "panel", name, "err", err)
		}
	}

	if data.OverviewErr != nil && data.StatsErr != nil && data.AnalyticsErr != nil {
		return &data, data.OverviewErr
	}
	return &data, nil
}
