package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/smartcampus/assistant-cli/internal/client/models"
)

// Dashboard renders the aggregated overview. Panels degrade independently:
// a failed panel prints its own notice while the others still render.
func (a *App) Dashboard(ctx context.Context) error {
	data, err := a.dashboard.Load(ctx)
	if err != nil {
		return a.report(ctx, err)
	}

	if data.OverviewErr != nil {
		printlnFn("Overview unavailable:", data.OverviewErr.Error())
	} else {
		for _, m := range data.Overview.Metrics {
			printlnFn(formatMetric(m))
		}
		for _, act := range data.Overview.Activity {
			printlnFn(fmt.Sprintf("  %s  %s: %s", act.Timestamp, act.Title, act.Description))
		}
	}

	if data.StatsErr != nil {
		printlnFn("Store stats unavailable:", data.StatsErr.Error())
	} else {
		printlnFn(fmt.Sprintf("Documents indexed: %d", data.Stats.Docs))
		for _, src := range data.Stats.Sources {
			printlnFn(fmt.Sprintf("  %-30s %d chunks, last ingested %s",
				src.Source, src.Chunks, src.LatestIngestedAt))
		}
	}

	if data.AnalyticsErr != nil {
		printlnFn("Quiz analytics unavailable:", data.AnalyticsErr.Error())
	} else if len(data.Analytics.Sessions) > 0 {
		printlnFn(fmt.Sprintf("Quiz sessions recorded: %d (see 'analytics')", len(data.Analytics.Sessions)))
	}
	return nil
}

func formatMetric(m models.DashboardMetric) string {
	s := fmt.Sprintf("%-22s %s", m.Label, m.Value)
	switch m.ChangeDirection {
	case "up":
		s += fmt.Sprintf("  +%.1f%%", m.Change)
	case "down":
		s += fmt.Sprintf("  -%.1f%%", m.Change)
	}
	if m.HelperText != "" {
		s += "  (" + m.HelperText + ")"
	}
	return s
}

// Analytics lists the quiz filter options and prints a browser link to the
// rendered analytics view, scoped to the latest session when one exists.
func (a *App) Analytics(ctx context.Context) error {
	opts, err := a.client.AnalyticsOptions(ctx)
	if err != nil {
		return a.report(ctx, err)
	}

	if len(opts.Sessions) == 0 {
		printlnFn("No quiz sessions yet")
	} else {
		printlnFn("Quiz sessions:", strings.Join(opts.Sessions, ", "))
	}
	if len(opts.Sources) > 0 {
		printlnFn("Sources:", strings.Join(opts.Sources, ", "))
	}

	scope := models.ScopeOverall
	var ids []string
	if opts.LatestSessionID != "" {
		scope = models.ScopeSession
		ids = []string{opts.LatestSessionID}
	}
	printlnFn("Open in browser:", a.client.QuizViewURL(scope, ids, ""))
	return nil
}
