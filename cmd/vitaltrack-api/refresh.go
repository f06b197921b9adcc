package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/vitaltrack/backend/internal/config"
	"github.com/vitaltrack/backend/internal/repository"
	"github.com/vitaltrack/backend/internal/service"
	"github.com/vitaltrack/backend/pkg/supabase"
)

var refreshInsightsCmd = &cobra.Command{
	Use:   "refresh-insights <user-id> [user-id...]",
	Short: "Recompute insights for the given users",
	Long: `Recompute and persist the insight set for one or more users from their
raw logs. Intended to be run from a scheduler so insights stay fresh for
users who haven't opened the dashboard recently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRefreshInsights,
}

var refreshTimeout time.Duration

func init() {
	refreshInsightsCmd.Flags().DurationVar(&refreshTimeout, "timeout", 30*time.Second, "Per-user refresh timeout")
}

func runRefreshInsights(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	initLogger(cfg)

	supabaseClient := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
	logRepo := repository.NewDailyLogRepository(supabaseClient)
	insightRepo := repository.NewInsightRepository(supabaseClient)
	metricsService := service.NewMetricsService(logRepo, insightRepo, cfg.Metrics)

	var failed int
	for _, userID := range args {
		ctx, cancel := context.WithTimeout(cmd.Context(), refreshTimeout)
		resp, err := metricsService.RefreshInsights(ctx, userID)
		cancel()
		if err != nil {
			failed++
			log.Printf("refresh failed for user %s: %v", userID, err)
			continue
		}
		log.Printf("refreshed %d insights for user %s", len(resp.Insights), userID)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d refreshes failed", failed, len(args))
	}
	return nil
}
