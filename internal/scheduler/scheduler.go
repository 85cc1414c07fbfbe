// Package scheduler runs the recurring monthly digest: after each month
// closes, the previous month's headline figures are assembled and posted to
// the configured webhook.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/harborview/venue-metrics/internal/config"
	"github.com/harborview/venue-metrics/internal/service/metrics"
	"github.com/harborview/venue-metrics/internal/service/periods"
	"github.com/harborview/venue-metrics/pkg/clients/notify"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	svc      *metrics.Service
	notifier notify.Client
	cfg      config.DigestConfig
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. The notifier may be nil
// when no webhook is configured; digests are then logged only.
func NewScheduler(cfg config.DigestConfig, svc *metrics.Service, notifier notify.Client, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(location)),
		svc:      svc,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger.Named("scheduler"),
	}, nil
}

// Start registers the digest job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.sendMonthlyDigest); err != nil {
		return fmt.Errorf("schedule monthly digest: %w", err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("schedule", s.cfg.CronSchedule))
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendMonthlyDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	now := time.Now()
	month, year := periods.PreviousMonth(int(now.Month()), now.Year())
	s.logger.Info("generating monthly digest", zap.Int("month", month), zap.Int("year", year))

	digest, err := s.buildDigest(ctx, month, year)
	if err != nil {
		s.logger.Error("failed to generate monthly digest", zap.Error(err))
		return
	}

	if s.notifier == nil {
		s.logger.Info("no webhook configured, digest not delivered",
			zap.Strings("lines", digest.Lines))
		return
	}

	if err := s.notifier.SendDigest(ctx, *digest); err != nil {
		s.logger.Error("failed to send monthly digest", zap.Error(err))
		return
	}
	s.logger.Info("monthly digest sent")
}

func (s *Scheduler) buildDigest(ctx context.Context, month, year int) (*notify.Digest, error) {
	revenue, err := s.svc.CombinedMonthlyRevenueMetrics(ctx, month, year)
	if err != nil {
		return nil, err
	}
	topItem, err := s.svc.TopMenuItem(ctx, periods.Monthly, month, year)
	if err != nil {
		return nil, err
	}
	topEvent, err := s.svc.TopEvent(ctx, periods.Monthly, month, year)
	if err != nil {
		return nil, err
	}

	lines := []string{
		fmt.Sprintf("Total revenue: %s", metrics.FormatMetric(metrics.Float(revenue.TotalRevenue), "$", 0)),
		fmt.Sprintf("Restaurant: %s", metrics.FormatMetric(metrics.Float(revenue.RestaurantRevenue), "$", 0)),
		fmt.Sprintf("Events: %s", metrics.FormatMetric(metrics.Float(revenue.EventsRevenue), "$", 0)),
		fmt.Sprintf("Budget variance: %s", metrics.FormatMetric(metrics.Float(revenue.Variance), "$", 0)),
	}
	if topItem != nil {
		lines = append(lines, fmt.Sprintf("Top menu item: %s (%s)",
			topItem.Name, metrics.FormatMetric(metrics.Float(topItem.TotalSales), "$", 0)))
	}
	if topEvent != nil {
		lines = append(lines, fmt.Sprintf("Top event: %s (%s)",
			topEvent.Name, metrics.FormatMetric(metrics.Float(topEvent.TotalSales), "$", 0)))
	}

	return &notify.Digest{
		Subject: fmt.Sprintf("Venue results for %s %d", time.Month(month), year),
		Lines:   lines,
	}, nil
}
