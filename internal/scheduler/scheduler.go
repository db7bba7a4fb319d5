package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/butcher/internal/config"
	"github.com/mamadbah2/butcher/internal/domain/models"
	"github.com/mamadbah2/butcher/internal/service/notify"
)

const jobTimeout = 2 * time.Minute

// DayCloser produces the closing report for a day.
type DayCloser interface {
	CloseDay(ctx context.Context, day time.Time) (models.DailyReport, string, error)
}

// Scheduler runs the daily closing report.
type Scheduler struct {
	cron     *cron.Cron
	closer   DayCloser
	notifier notify.Notifier
	cfg      config.ReportingConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a scheduler evaluating the cron expression in the configured timezone.
func NewScheduler(cfg config.ReportingConfig, closer DayCloser, notifier notify.Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		closer:   closer,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Start registers the closing job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runClosing); err != nil {
		return fmt.Errorf("schedule closing report %q: %w", s.cfg.CronSchedule, err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule), zap.String("timezone", s.cfg.Timezone))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runClosing() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.CloseAndNotify(ctx, s.now()); err != nil {
		s.logger.Error("closing report failed", zap.Error(err))
	}
}

// CloseAndNotify builds the report for day and sends it to the configured recipient.
func (s *Scheduler) CloseAndNotify(ctx context.Context, day time.Time) error {
	report, message, err := s.closer.CloseDay(ctx, day)
	if err != nil {
		return fmt.Errorf("generate closing report: %w", err)
	}

	req := models.OutboundMessageRequest{
		To:      s.cfg.Recipient,
		Message: message,
	}
	if err := s.notifier.SendOutbound(ctx, req); err != nil {
		return fmt.Errorf("send closing report: %w", err)
	}

	s.logger.Info("closing report sent",
		zap.Time("date", report.Date),
		zap.Int("orders", report.Orders),
		zap.Float64("sales", report.SalesAmount))
	return nil
}
