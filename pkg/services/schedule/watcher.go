// Package schedule runs the rental revenue validation on a cron schedule.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/de-tools/hostaway-atlas/pkg/services/dashboard"
	"github.com/de-tools/hostaway-atlas/pkg/store/export"
	"github.com/de-tools/hostaway-atlas/pkg/store/tabular"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const runTimeout = 5 * time.Minute

type Validator interface {
	Validate(ctx context.Context, req dashboard.ReportRequest) (*dashboard.ValidationPage, error)
}

type Uploader interface {
	Upload(ctx context.Context, name, contentType string, body []byte) (string, error)
}

type Config struct {
	Spec        string
	WindowDays  int
	Location    *time.Location
	Credentials domain.Credentials
}

// Watcher validates the trailing WindowDays days on every tick.
type Watcher struct {
	validator Validator
	uploader  Uploader
	cfg       Config
	now       func() time.Time
}

// NewWatcher accepts a nil uploader when discrepancies should only be logged.
func NewWatcher(validator Validator, uploader Uploader, cfg Config) *Watcher {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 30
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Watcher{validator: validator, uploader: uploader, cfg: cfg, now: time.Now}
}

// Run schedules the job and blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	c := cron.New(cron.WithLocation(w.cfg.Location))
	_, err := c.AddFunc(w.cfg.Spec, func() {
		runCtx, cancel := context.WithTimeout(ctx, runTimeout)
		defer cancel()
		if _, err := w.RunOnce(runCtx); err != nil {
			logger.Error().Err(err).Msg("scheduled validation failed")
		}
	})
	if err != nil {
		return fmt.Errorf("unable to schedule validation %q: %w", w.cfg.Spec, err)
	}

	c.Start()
	logger.Info().Str("spec", w.cfg.Spec).Int("window_days", w.cfg.WindowDays).Msg("validation scheduler started")

	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info().Msg("validation scheduler stopped")
	return nil
}

// RunOnce validates the current window and uploads discrepancies when any
// were found and an uploader is configured.
func (w *Watcher) RunOnce(ctx context.Context) (*dashboard.ValidationPage, error) {
	logger := zerolog.Ctx(ctx)

	to := w.now().In(w.cfg.Location)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -w.cfg.WindowDays)

	criteria := domain.DefaultFilterCriteria()
	criteria.FromDate = from
	criteria.ToDate = to

	page, err := w.validator.Validate(ctx, dashboard.ReportRequest{
		Credentials: w.cfg.Credentials,
		Criteria:    criteria,
	})
	if err != nil {
		return nil, err
	}

	event := logger.Info().
		Str("from", criteria.From()).
		Str("to", criteria.To()).
		Int("rows", page.Table.Len()).
		Strs("removed_columns", page.RemovedColumns)
	if len(page.MissingColumns) > 0 {
		event.Strs("missing_columns", page.MissingColumns).Msg("validation skipped")
		return page, nil
	}
	event.Int("discrepancies", page.Result.DiscrepancyCount()).Msg("validation finished")

	if page.Result.AllValid() || w.uploader == nil {
		return page, nil
	}

	body, err := tabular.Encode(page.Result.Discrepancies)
	if err != nil {
		return page, err
	}
	name := fmt.Sprintf("%s_%s_%s.csv", export.DiscrepanciesFileName, criteria.From(), criteria.To())
	if _, err := w.uploader.Upload(ctx, name, export.FormatCSV.ContentType(), body); err != nil {
		return page, err
	}
	return page, nil
}
