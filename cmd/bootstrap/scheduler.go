package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"guildhall/internal/pkg/config"
	"guildhall/internal/usecase/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Invoke(
		StartScheduler,
	),
)

// StartScheduler registers the monthly invoice run and the overdue scan on
// cron schedules taken from config. Both jobs can also be triggered over the
// admin API, so a missed tick is recoverable by hand.
func StartScheduler(
	lc fx.Lifecycle,
	cfg config.Config,
	billing commands.BillingCommands,
	loc *time.Location,
	logger *slog.Logger,
) error {
	scheduler := cron.New(cron.WithLocation(loc))

	if _, err := scheduler.AddFunc(cfg.Billing.InvoiceCron, func() {
		report, err := billing.GenerateMonthlyInvoices(context.Background())
		if err != nil {
			logger.Error("monthly invoice run failed", "error", err)
			return
		}
		logger.Info("monthly invoice run finished",
			"processed", report.Processed, "succeeded", report.Succeeded, "failed", report.Failed)
	}); err != nil {
		return err
	}

	if _, err := scheduler.AddFunc(cfg.Billing.OverdueCron, func() {
		report, err := billing.FlagOverdue(context.Background())
		if err != nil {
			logger.Error("overdue scan failed", "error", err)
			return
		}
		logger.Info("overdue scan finished",
			"processed", report.Processed, "succeeded", report.Succeeded, "failed", report.Failed)
	}); err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			scheduler.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopped := scheduler.Stop()
			select {
			case <-stopped.Done():
			case <-ctx.Done():
			}
			return nil
		},
	})

	return nil
}
