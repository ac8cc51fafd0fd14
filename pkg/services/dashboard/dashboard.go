// Package dashboard runs the page chains: resolve listings, build the payload,
// fetch, transform, validate and ask the agent.
package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/de-tools/hostaway-atlas/pkg/services/agent"
	"github.com/de-tools/hostaway-atlas/pkg/services/payload"
	"github.com/de-tools/hostaway-atlas/pkg/services/table"
	"github.com/de-tools/hostaway-atlas/pkg/services/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	DefaultMaxRows      = 100
	DefaultColumnSubset = 5
)

type ReportSource interface {
	ListListingIDs(ctx context.Context, token string) ([]int64, error)
	FetchReport(ctx context.Context, token string, variant domain.ReportVariant, p domain.ReportPayload) (*domain.Table, error)
}

type RunRecorder interface {
	Record(ctx context.Context, run domain.ValidationRun) error
}

type ReportRequest struct {
	Credentials domain.Credentials
	Criteria    domain.FilterCriteria
	Question    string
	// Columns projects the view. With Optimize and no Columns the first
	// DefaultColumnSubset columns are kept.
	Columns  []string
	Optimize bool
	// MaxRows overrides the dashboard cap; negative disables it.
	MaxRows int
}

type ReportPage struct {
	Variant   domain.ReportVariant
	Table     *domain.Table
	View      *domain.Table
	TotalRows int
	Truncated bool
	Answer    string
	AgentErr  error
}

type ValidationPage struct {
	Table          *domain.Table
	Filtered       *domain.Table
	RemovedColumns []string
	MissingColumns []string
	Result         *domain.ValidationResult
	Answer         string
	AgentErr       error
	RunID          uuid.UUID
}

type Dashboard struct {
	source     ReportSource
	agent      agent.Agent
	comparator validation.Comparator
	recorder   RunRecorder
	maxRows    int
	columns    int
	now        func() time.Time
}

type Option func(*Dashboard)

func WithComparator(c validation.Comparator) Option {
	return func(d *Dashboard) { d.comparator = c }
}

func WithRecorder(r RunRecorder) Option {
	return func(d *Dashboard) { d.recorder = r }
}

func WithMaxRows(n int) Option {
	return func(d *Dashboard) { d.maxRows = n }
}

func WithColumnSubset(n int) Option {
	return func(d *Dashboard) {
		if n > 0 {
			d.columns = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) { d.now = now }
}

func New(source ReportSource, ag agent.Agent, opts ...Option) *Dashboard {
	d := &Dashboard{
		source:     source,
		agent:      ag,
		comparator: validation.ExactFloat{},
		maxRows:    DefaultMaxRows,
		columns:    DefaultColumnSubset,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Fetch resolves listings when the variant needs them, then fetches the full
// report. An empty report is ErrEmptyResult.
func (d *Dashboard) Fetch(ctx context.Context, variant domain.ReportVariant, req ReportRequest) (*domain.Table, error) {
	logger := zerolog.Ctx(ctx).With().Str("variant", string(variant)).Logger()

	if err := req.Credentials.Validate(); err != nil {
		return nil, err
	}
	token := req.Credentials.HostawayToken

	var listingIDs []int64
	if variant == domain.VariantCalculated {
		ids, err := d.source.ListListingIDs(ctx, token)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to resolve listings")
			return nil, err
		}
		if len(ids) == 0 {
			return nil, domain.ErrNoListings
		}
		listingIDs = ids
	}

	t, err := d.source.FetchReport(ctx, token, variant, payload.Build(variant, req.Criteria, listingIDs))
	if err != nil {
		logger.Warn().Err(err).Msg("failed to fetch report")
		return nil, err
	}
	if t.Empty() {
		return nil, domain.ErrEmptyResult
	}

	logger.Info().Int("rows", t.Len()).Int("columns", len(t.Columns)).Msg("report loaded")
	return t, nil
}

// Report runs a report page: fetch, cap, project and optionally answer.
func (d *Dashboard) Report(ctx context.Context, variant domain.ReportVariant, req ReportRequest) (*ReportPage, error) {
	t, err := d.Fetch(ctx, variant, req)
	if err != nil {
		return nil, err
	}

	maxRows := d.maxRows
	if req.MaxRows != 0 {
		maxRows = req.MaxRows
	}
	view, truncated := table.Cap(t, maxRows)

	columns := req.Columns
	if len(columns) == 0 && req.Optimize {
		columns = table.DefaultSelection(view, d.columns)
	}
	if len(columns) > 0 {
		view = table.Select(view, columns)
	}

	page := &ReportPage{
		Variant:   variant,
		Table:     t,
		View:      view,
		TotalRows: t.Len(),
		Truncated: truncated,
	}
	page.Answer, page.AgentErr = d.ask(ctx, req, view)
	return page, nil
}

// Validate runs the rental revenue page. A schema mismatch stops only the
// reconciliation; it is reported through MissingColumns.
func (d *Dashboard) Validate(ctx context.Context, req ReportRequest) (*ValidationPage, error) {
	logger := zerolog.Ctx(ctx)

	t, err := d.Fetch(ctx, domain.VariantListingFinancials, req)
	if err != nil {
		return nil, err
	}

	filtered, removed := table.FilterZeroColumns(t)
	page := &ValidationPage{
		Table:          t,
		Filtered:       filtered,
		RemovedColumns: removed,
	}

	agentView := filtered
	result, err := validation.Validate(filtered, d.comparator)
	var mismatch *domain.SchemaMismatchError
	switch {
	case errors.As(err, &mismatch):
		page.MissingColumns = mismatch.Missing
		logger.Warn().Strs("missing", mismatch.Missing).Msg("validation skipped")
	case err != nil:
		return nil, err
	default:
		page.Result = result
		agentView = result.Table
		logger.Info().
			Int("rows", result.Table.Len()).
			Int("discrepancies", result.DiscrepancyCount()).
			Msg("rental revenue validated")
	}

	page.RunID = d.record(ctx, req.Criteria, page)
	page.Answer, page.AgentErr = d.ask(ctx, req, agentView)
	return page, nil
}

func (d *Dashboard) ask(ctx context.Context, req ReportRequest, view *domain.Table) (string, error) {
	if req.Question == "" || d.agent == nil {
		return "", nil
	}
	answer, err := d.agent.Ask(ctx, req.Credentials.OpenAIKey, view, req.Question)
	if err != nil {
		var agentErr *domain.AgentError
		if !errors.As(err, &agentErr) {
			err = &domain.AgentError{Err: err}
		}
		return "", err
	}
	return answer, nil
}

func (d *Dashboard) record(ctx context.Context, criteria domain.FilterCriteria, page *ValidationPage) uuid.UUID {
	if d.recorder == nil {
		return uuid.Nil
	}
	run := domain.ValidationRun{
		ID:             uuid.New(),
		FromDate:       criteria.FromDate,
		ToDate:         criteria.ToDate,
		TotalRows:      page.Table.Len(),
		RemovedColumns: page.RemovedColumns,
		MissingColumns: page.MissingColumns,
		CreatedAt:      d.now().UTC(),
	}
	if page.Result != nil {
		run.DiscrepancyCount = page.Result.DiscrepancyCount()
	}
	if err := d.recorder.Record(ctx, run); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to record validation run")
		return uuid.Nil
	}
	return run.ID
}
