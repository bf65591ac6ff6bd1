package services

import (
	"context"
	"errors"
	"testing"

	"github.com/smartcampus/assistant-cli/internal/client/models"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Load(t *testing.T) {
	fake := &fakeAPI{
		overview: &models.DashboardOverview{Metrics: []models.DashboardMetric{{ID: "docs", Value: "4"}}},
		stats:    &models.StoreStats{Docs: 4},
		options:  &models.AnalyticsOptions{Sessions: []string{"sess-1"}},
	}
	svc := NewDashboardService(fake, nil)

	data, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, data.Overview)
	require.NotNil(t, data.Stats)
	require.NotNil(t, data.Analytics)
	require.NoError(t, data.OverviewErr)
	require.NoError(t, data.StatsErr)
	require.NoError(t, data.AnalyticsErr)
}

func TestDashboardService_OnePanelFailureDegrades(t *testing.T) {
	statsErr := errors.New("stats backend down")
	fake := &fakeAPI{
		overview: &models.DashboardOverview{},
		statsErr: statsErr,
		options:  &models.AnalyticsOptions{},
	}
	svc := NewDashboardService(fake, nil)

	data, err := svc.Load(context.Background())
	require.NoError(t, err, "one failed panel must not fail the page")
	require.NotNil(t, data.Overview)
	require.Nil(t, data.Stats)
	require.ErrorIs(t, data.StatsErr, statsErr)
	require.NotNil(t, data.Analytics)
}

func TestDashboardService_AllPanelsFailed(t *testing.T) {
	down := errors.New("unreachable")
	fake := &fakeAPI{overviewErr: down, statsErr: down, optionsErr: down}
	svc := NewDashboardService(fake, nil)

	data, err := svc.Load(context.Background())
	require.Error(t, err)
	require.NotNil(t, data)
}
