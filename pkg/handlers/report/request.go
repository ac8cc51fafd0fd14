package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/de-tools/hostaway-atlas/pkg/models/api"
	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/de-tools/hostaway-atlas/pkg/services/dashboard"
)

const (
	HeaderHostawayToken = "X-Hostaway-Token"
	HeaderOpenAIKey     = "X-OpenAI-Key"
)

type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return e.err.Error() }

func (e *badRequestError) Unwrap() error { return e.err }

func badRequest(format string, args ...any) error {
	return &badRequestError{err: fmt.Errorf(format, args...)}
}

func credentials(r *http.Request) domain.Credentials {
	return domain.Credentials{
		HostawayToken: r.Header.Get(HeaderHostawayToken),
		OpenAIKey:     r.Header.Get(HeaderOpenAIKey),
	}
}

// decodeRequest reads an optional JSON body; absent fields take the page defaults.
func decodeRequest(r *http.Request, variant domain.ReportVariant) (dashboard.ReportRequest, error) {
	var body api.ReportRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			return dashboard.ReportRequest{}, badRequest("invalid request body: %v", err)
		}
	}

	criteria, err := toCriteria(body, variant)
	if err != nil {
		return dashboard.ReportRequest{}, err
	}
	return dashboard.ReportRequest{
		Credentials: credentials(r),
		Criteria:    criteria,
		Question:    body.Question,
		Columns:     body.Columns,
		Optimize:    body.Optimize,
		MaxRows:     body.MaxRows,
	}, nil
}

func toCriteria(body api.ReportRequest, variant domain.ReportVariant) (domain.FilterCriteria, error) {
	criteria := domain.DefaultFilterCriteria()
	if variant == domain.VariantStandard {
		criteria.ChannelIDs = []domain.ChannelID{domain.ChannelAirbnbOfficial}
	}

	if body.FromDate != "" {
		from, err := time.Parse(domain.DateLayout, body.FromDate)
		if err != nil {
			return criteria, badRequest("invalid from_date %q", body.FromDate)
		}
		criteria.FromDate = from
	}
	if body.ToDate != "" {
		to, err := time.Parse(domain.DateLayout, body.ToDate)
		if err != nil {
			return criteria, badRequest("invalid to_date %q", body.ToDate)
		}
		criteria.ToDate = to
	}
	if body.DateType != "" {
		dt, err := domain.ParseDateType(body.DateType)
		if err != nil {
			return criteria, &badRequestError{err: err}
		}
		criteria.DateType = dt
	}
	if body.Status != nil {
		st, err := domain.ParseStatus(*body.Status)
		if err != nil {
			return criteria, &badRequestError{err: err}
		}
		criteria.Status = st
	}
	if body.ChannelIDs != nil {
		criteria.ChannelIDs = make([]domain.ChannelID, len(body.ChannelIDs))
		for i, id := range body.ChannelIDs {
			c := domain.ChannelID(id)
			if _, ok := domain.Channels[c]; !ok {
				return criteria, badRequest("unknown channel id %d", id)
			}
			criteria.ChannelIDs[i] = c
		}
	}
	return criteria, nil
}
