package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/de-tools/hostaway-atlas/pkg/models/api"
	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/de-tools/hostaway-atlas/pkg/services/dashboard"
	"github.com/de-tools/hostaway-atlas/pkg/services/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var errNoDiscrepancies = errors.New("all records are valid, no discrepancies to export")

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func statusFor(err error) int {
	var (
		badReq   *badRequestError
		upstream *domain.UpstreamError
		mismatch *domain.SchemaMismatchError
	)
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		return http.StatusUnauthorized
	case errors.As(err, &badReq):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoListings), errors.Is(err, domain.ErrEmptyResult), errors.Is(err, errNoDiscrepancies):
		return http.StatusNotFound
	case errors.As(err, &mismatch):
		return http.StatusUnprocessableEntity
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	event := zerolog.Ctx(r.Context()).Warn()
	if status == http.StatusInternalServerError {
		event = zerolog.Ctx(r.Context()).Error()
	}
	event.Err(err).Int("status", status).Msg("request failed")

	body := api.Error{Error: err.Error()}
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		body.UpstreamStatus = upstream.StatusCode
		body.UpstreamBody = upstream.Body
	}
	writeJSON(w, r, status, body)
}

func toTable(t *domain.Table) api.Table {
	if t == nil {
		return api.Table{Columns: []string{}, Rows: [][]string{}}
	}
	rows := t.Rows
	if rows == nil {
		rows = [][]string{}
	}
	return api.Table{Columns: t.Columns, Rows: rows}
}

func agentError(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func toReportResponse(page *dashboard.ReportPage) api.ReportResponse {
	return api.ReportResponse{
		Variant:    string(page.Variant),
		Title:      page.Variant.Title(),
		Table:      toTable(page.View),
		TotalRows:  page.TotalRows,
		Truncated:  page.Truncated,
		Answer:     page.Answer,
		AgentError: agentError(page.AgentErr),
	}
}

func toValidationResponse(page *dashboard.ValidationPage) api.ValidationResponse {
	resp := api.ValidationResponse{
		TotalRows:      page.Table.Len(),
		Filtered:       toTable(page.Filtered),
		RemovedColumns: page.RemovedColumns,
		MissingColumns: page.MissingColumns,
		Answer:         page.Answer,
		AgentError:     agentError(page.AgentErr),
	}
	if resp.RemovedColumns == nil {
		resp.RemovedColumns = []string{}
	}
	if page.RunID != uuid.Nil {
		resp.RunID = page.RunID.String()
	}

	switch {
	case page.Result == nil:
		resp.Message = (&domain.SchemaMismatchError{Missing: page.MissingColumns}).Error()
	case page.Result.AllValid():
		resp.Validated = true
		resp.Message = "All records are valid! No discrepancies found."
	default:
		resp.Validated = true
		resp.DiscrepancyCount = page.Result.DiscrepancyCount()
		view := toTable(validation.DiscrepancyView(page.Result))
		resp.Discrepancies = &view
		resp.Message = fmt.Sprintf("Discrepancies found in %d rows!", resp.DiscrepancyCount)
	}
	return resp
}

func toRun(run domain.ValidationRun) api.ValidationRun {
	return api.ValidationRun{
		ID:               run.ID.String(),
		FromDate:         run.FromDate.Format(domain.DateLayout),
		ToDate:           run.ToDate.Format(domain.DateLayout),
		TotalRows:        run.TotalRows,
		DiscrepancyCount: run.DiscrepancyCount,
		RemovedColumns:   run.RemovedColumns,
		MissingColumns:   run.MissingColumns,
		CreatedAt:        run.CreatedAt,
	}
}
