package main

import (
	"fmt"
	"time"

	"nikkei-dashboard/internal/dashboard/config"
	delivery "nikkei-dashboard/internal/dashboard/delivery/http"
	"nikkei-dashboard/internal/dashboard/service"
	"nikkei-dashboard/pkg/logger"

	"github.com/spf13/cobra"
)

var diagnoseDate string

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Prints the diagnosis for a date (default: latest)",
	RunE:  runDiagnose,
}

func init() {
	diagnoseCmd.Flags().StringVarP(&diagnoseDate, "date", "d", "", "Diagnosis date (YYYY-MM-DD)")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = appLogger.Sync() }()

	dashboardSvc, cleanup, err := buildDashboardService(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer cleanup()

	var date time.Time
	if diagnoseDate != "" {
		if date, err = service.ParseDate(diagnoseDate); err != nil {
			return err
		}
	} else if date, err = dashboardSvc.LatestDate(ctx); err != nil {
		return err
	}

	diagnosis, err := dashboardSvc.Diagnose(ctx, date)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Date:       %s\n", diagnosis.Date)
	fmt.Fprintf(out, "Score:      %.2f\n", diagnosis.Score)
	fmt.Fprintf(out, "Judgment:   %s (%s)\n", diagnosis.Judgment, diagnosis.JudgmentNote)
	fmt.Fprintf(out, "Stored:     %s\n", diagnosis.JudgmentText)
	fmt.Fprintf(out, "Hit rate:   %s\n", delivery.FormatHitRate(diagnosis.Accuracy))
	return nil
}
