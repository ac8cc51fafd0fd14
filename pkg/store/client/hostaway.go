package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/de-tools/hostaway-atlas/pkg/store/tabular"
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL        = "https://api.hostaway.com/v1"
	DefaultListingTimeout = 60 * time.Second
	DefaultReportTimeout  = 120 * time.Second

	listingsPath = "/listings"
)

type Settings struct {
	BaseURL        string        `mapstructure:"base_url"`
	ListingTimeout time.Duration `mapstructure:"listing_timeout"`
	ReportTimeout  time.Duration `mapstructure:"report_timeout"`
}

// Client talks to the Hostaway public API. It holds no credentials; every call
// receives the bearer token of the session that issued it.
type Client struct {
	http     *http.Client
	settings Settings
}

func NewClient(httpClient *http.Client, settings Settings) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if settings.BaseURL == "" {
		settings.BaseURL = DefaultBaseURL
	}
	if settings.ListingTimeout <= 0 {
		settings.ListingTimeout = DefaultListingTimeout
	}
	if settings.ReportTimeout <= 0 {
		settings.ReportTimeout = DefaultReportTimeout
	}
	settings.BaseURL = strings.TrimRight(settings.BaseURL, "/")
	return &Client{http: httpClient, settings: settings}
}

type listingsResponse struct {
	Result []struct {
		ID int64 `json:"id"`
	} `json:"result"`
}

// ListListingIDs returns every listing id of the account in response order.
// A non-200 response is an UpstreamError, never an empty list.
func (c *Client) ListListingIDs(ctx context.Context, token string) ([]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.settings.ListingTimeout)
	defer cancel()

	body, err := c.do(ctx, http.MethodGet, listingsPath, token, "", nil)
	if err != nil {
		return nil, err
	}

	var listings listingsResponse
	if err := json.Unmarshal(body, &listings); err != nil {
		return nil, &domain.UpstreamError{
			Endpoint:   listingsPath,
			StatusCode: http.StatusOK,
			Body:       truncate(body),
			Err:        fmt.Errorf("failed to unmarshal listings response: %w", err),
		}
	}

	ids := make([]int64, 0, len(listings.Result))
	for _, l := range listings.Result {
		ids = append(ids, l.ID)
	}
	return ids, nil
}

// FetchReport posts payload to the variant's endpoint and parses the delimited
// response into a table.
func (c *Client) FetchReport(
	ctx context.Context,
	token string,
	variant domain.ReportVariant,
	payload domain.ReportPayload,
) (*domain.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, c.settings.ReportTimeout)
	defer cancel()

	reqBody, err := payload.Body()
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", variant, err)
	}

	body, err := c.do(ctx, http.MethodPost, variant.Path(), token, payload.ContentType(), reqBody)
	if err != nil {
		return nil, err
	}

	table, err := tabular.ParseBytes(body, payload.Delimiter())
	if err != nil {
		return nil, &domain.UpstreamError{
			Endpoint:   variant.Path(),
			StatusCode: http.StatusOK,
			Body:       truncate(body),
			Err:        fmt.Errorf("failed to parse report: %w", err),
		}
	}
	return table, nil
}

func (c *Client) do(ctx context.Context, method, path, token, contentType string, body []byte) ([]byte, error) {
	logger := zerolog.Ctx(ctx)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.settings.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Cache-control", "no-cache")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("request failed")
		return nil, &domain.UpstreamError{Endpoint: path, Err: err}
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close response body")
		}
	}(resp.Body)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("failed to read response")
		return nil, &domain.UpstreamError{Endpoint: path, StatusCode: resp.StatusCode, Err: err}
	}

	logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Int("bytes", len(respBody)).
		Msg("upstream response")

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.UpstreamError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Body:       truncate(respBody),
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
	return respBody, nil
}

const maxErrorBody = 2048

func truncate(body []byte) string {
	if len(body) <= maxErrorBody {
		return string(body)
	}
	return string(body[:maxErrorBody]) + "..."
}
