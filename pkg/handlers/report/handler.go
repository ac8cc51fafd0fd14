package report

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/de-tools/hostaway-atlas/pkg/models/api"
	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/de-tools/hostaway-atlas/pkg/services/dashboard"
	"github.com/de-tools/hostaway-atlas/pkg/store/export"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Pages interface {
	Fetch(ctx context.Context, variant domain.ReportVariant, req dashboard.ReportRequest) (*domain.Table, error)
	Report(ctx context.Context, variant domain.ReportVariant, req dashboard.ReportRequest) (*dashboard.ReportPage, error)
	Validate(ctx context.Context, req dashboard.ReportRequest) (*dashboard.ValidationPage, error)
}

type RunLister interface {
	List(ctx context.Context, limit int) ([]domain.ValidationRun, error)
}

type Handler struct {
	pages Pages
	runs  RunLister
}

// NewHandler accepts a nil RunLister when no run history is kept.
func NewHandler(pages Pages, runs RunLister) *Handler {
	return &Handler{pages: pages, runs: runs}
}

func (h *Handler) ListChannels(w http.ResponseWriter, r *http.Request) {
	channels := make([]api.Channel, 0, len(domain.ChannelOrder))
	for _, c := range domain.ChannelOrder {
		channels = append(channels, api.Channel{ID: int(c), Label: c.Label()})
	}
	writeJSON(w, r, http.StatusOK, channels)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	variant, err := domain.ParseReportVariant(chi.URLParam(r, "variant"))
	if err != nil {
		writeError(w, r, &badRequestError{err: err})
		return
	}
	req, err := decodeRequest(r, variant)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.pages.Report(ctx, variant, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toReportResponse(page))
}

// ExportReport downloads the full report, independent of any display cap.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	variant, err := domain.ParseReportVariant(chi.URLParam(r, "variant"))
	if err != nil {
		writeError(w, r, &badRequestError{err: err})
		return
	}
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, &badRequestError{err: err})
		return
	}
	req, err := decodeRequest(r, variant)
	if err != nil {
		writeError(w, r, err)
		return
	}

	t, err := h.pages.Fetch(ctx, variant, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.download(w, r, format, variant.FileName(), variant.Title(), t)
}

func (h *Handler) ValidateRentalRevenue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := decodeRequest(r, domain.VariantListingFinancials)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.pages.Validate(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toValidationResponse(page))
}

func (h *Handler) ExportDiscrepancies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, &badRequestError{err: err})
		return
	}
	req, err := decodeRequest(r, domain.VariantListingFinancials)
	if err != nil {
		writeError(w, r, err)
		return
	}
	req.Question = ""

	page, err := h.pages.Validate(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	switch {
	case page.Result == nil:
		writeError(w, r, &domain.SchemaMismatchError{Missing: page.MissingColumns})
		return
	case page.Result.AllValid():
		writeError(w, r, errNoDiscrepancies)
		return
	}
	h.download(w, r, format, export.DiscrepanciesFileName, "Rental Revenue Discrepancies", page.Result.Discrepancies)
}

func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, r, badRequest("invalid limit %q", raw))
			return
		}
		limit = n
	}

	response := []api.ValidationRun{}
	if h.runs != nil {
		runs, err := h.runs.List(ctx, limit)
		if err != nil {
			writeError(w, r, err)
			return
		}
		for _, run := range runs {
			response = append(response, toRun(run))
		}
	}
	writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request, format export.Format, name, title string, t *domain.Table) {
	var buf bytes.Buffer
	if err := export.Render(&buf, format, title, t); err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName(name)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("file", format.FileName(name)).Msg("failed to write download")
	}
}
