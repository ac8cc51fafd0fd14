package dashboard

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) ListListingIDs(ctx context.Context, token string) ([]int64, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockSource) FetchReport(
	ctx context.Context,
	token string,
	variant domain.ReportVariant,
	p domain.ReportPayload,
) (*domain.Table, error) {
	args := m.Called(ctx, token, variant, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Table), args.Error(1)
}

type mockAgent struct {
	mock.Mock
}

func (m *mockAgent) Ask(ctx context.Context, apiKey string, t *domain.Table, question string) (string, error) {
	args := m.Called(ctx, apiKey, t, question)
	return args.String(0), args.Error(1)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(ctx context.Context, run domain.ValidationRun) error {
	return m.Called(ctx, run).Error(0)
}

var creds = domain.Credentials{HostawayToken: "tok", OpenAIKey: "sk"}

func request() ReportRequest {
	return ReportRequest{Credentials: creds, Criteria: domain.DefaultFilterCriteria()}
}

func financials() *domain.Table {
	return domain.NewTable(
		[]string{"Listing ID", "Base rate", "Cleaning fee value", "rentalRevenue", "Tax"},
		[][]string{
			{"101", "100", "20", "120", "0"},
			{"102", "50", "10", "59", "0"},
		},
	)
}

func TestFetch_MissingCredentialsSkipsNetwork(t *testing.T) {
	source := new(mockSource)
	d := New(source, nil)

	_, err := d.Fetch(context.Background(), domain.VariantStandard, ReportRequest{
		Credentials: domain.Credentials{HostawayToken: "tok"},
	})

	assert.ErrorIs(t, err, domain.ErrMissingCredential)
	source.AssertNotCalled(t, "FetchReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFetch_Calculated(t *testing.T) {
	tests := []struct {
		name             string
		setupMock        func(*mockSource)
		expectedErr      error
		expectedUpstream bool
	}{
		{
			name: "listings feed the payload",
			setupMock: func(m *mockSource) {
				m.On("ListListingIDs", mock.Anything, "tok").Return([]int64{7, 9}, nil)
				m.On("FetchReport", mock.Anything, "tok", domain.VariantCalculated,
					mock.MatchedBy(func(p *domain.EncodedPayload) bool {
						first, _ := p.Get("listingMapIds[0]")
						second, _ := p.Get("listingMapIds[1]")
						return first == "7" && second == "9"
					}),
				).Return(financials(), nil)
			},
		},
		{
			name: "no listings aborts before fetching",
			setupMock: func(m *mockSource) {
				m.On("ListListingIDs", mock.Anything, "tok").Return([]int64{}, nil)
			},
			expectedErr: domain.ErrNoListings,
		},
		{
			name: "listing failure is not reported as no listings",
			setupMock: func(m *mockSource) {
				m.On("ListListingIDs", mock.Anything, "tok").Return(nil,
					&domain.UpstreamError{Endpoint: "/listings", StatusCode: http.StatusForbidden})
			},
			expectedUpstream: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := new(mockSource)
			tt.setupMock(source)
			d := New(source, nil)

			got, err := d.Fetch(context.Background(), domain.VariantCalculated, request())

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
				source.AssertNotCalled(t, "FetchReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			case tt.expectedUpstream:
				var upstream *domain.UpstreamError
				require.ErrorAs(t, err, &upstream)
				assert.NotErrorIs(t, err, domain.ErrNoListings)
			default:
				require.NoError(t, err)
				assert.Equal(t, 2, got.Len())
			}
			source.AssertExpectations(t)
		})
	}
}

func TestFetch_EmptyReport(t *testing.T) {
	source := new(mockSource)
	source.On("FetchReport", mock.Anything, "tok", domain.VariantStandard, mock.Anything).
		Return(domain.NewTable([]string{"a"}, [][]string{}), nil)

	_, err := New(source, nil).Fetch(context.Background(), domain.VariantStandard, request())

	assert.ErrorIs(t, err, domain.ErrEmptyResult)
}

func TestReport_CapsProjectsAndAsks(t *testing.T) {
	// Given
	rows := make([][]string, 0, 5)
	for i := 0; i < 5; i++ {
		rows = append(rows, []string{"a", "b", "c"})
	}
	full := domain.NewTable([]string{"x", "y", "z"}, rows)

	source := new(mockSource)
	source.On("FetchReport", mock.Anything, "tok", domain.VariantStandard, mock.Anything).Return(full, nil)
	ag := new(mockAgent)
	ag.On("Ask", mock.Anything, "sk", mock.MatchedBy(func(t *domain.Table) bool {
		return t.Len() == 3 && len(t.Columns) == 2
	}), "how many?").Return("three", nil)

	req := request()
	req.Question = "how many?"
	req.Optimize = true

	// When
	page, err := New(source, ag, WithMaxRows(3), WithColumnSubset(2)).
		Report(context.Background(), domain.VariantStandard, req)

	// Then
	require.NoError(t, err)
	assert.True(t, page.Truncated)
	assert.Equal(t, 5, page.TotalRows)
	assert.Equal(t, full, page.Table)
	assert.Equal(t, []string{"x", "y"}, page.View.Columns)
	assert.Equal(t, "three", page.Answer)
	assert.NoError(t, page.AgentErr)
	ag.AssertExpectations(t)
}

func TestReport_AgentFailureDoesNotAbortPage(t *testing.T) {
	source := new(mockSource)
	source.On("FetchReport", mock.Anything, "tok", domain.VariantStandard, mock.Anything).Return(financials(), nil)
	ag := new(mockAgent)
	ag.On("Ask", mock.Anything, "sk", mock.Anything, "why?").Return("", errors.New("rate limited"))

	req := request()
	req.Question = "why?"
	page, err := New(source, ag).Report(context.Background(), domain.VariantStandard, req)

	require.NoError(t, err)
	assert.Equal(t, financials(), page.View)
	var agentErr *domain.AgentError
	assert.ErrorAs(t, page.AgentErr, &agentErr)
}

func TestValidate_FiltersValidatesAndRecords(t *testing.T) {
	// Given
	source := new(mockSource)
	source.On("FetchReport", mock.Anything, "tok", domain.VariantListingFinancials,
		mock.MatchedBy(func(p *domain.StructuredPayload) bool {
			return len(p.ChannelIDs) == 1 && p.ChannelIDs[0] == domain.ChannelDirect
		}),
	).Return(financials(), nil)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	recorder := new(mockRecorder)
	recorder.On("Record", mock.Anything, mock.MatchedBy(func(run domain.ValidationRun) bool {
		return run.TotalRows == 2 && run.DiscrepancyCount == 1 &&
			assert.ObjectsAreEqual([]string{"Tax"}, run.RemovedColumns) &&
			run.CreatedAt.Equal(now)
	})).Return(nil)

	req := request()
	req.Criteria.ChannelIDs = []domain.ChannelID{domain.ChannelAirbnbOfficial}

	// When
	page, err := New(source, nil, WithRecorder(recorder), WithClock(func() time.Time { return now })).
		Validate(context.Background(), req)

	// Then
	require.NoError(t, err)
	assert.Equal(t, []string{"Tax"}, page.RemovedColumns)
	assert.Empty(t, page.MissingColumns)
	require.NotNil(t, page.Result)
	assert.Equal(t, 1, page.Result.DiscrepancyCount())
	assert.Equal(t, "102", page.Result.Discrepancies.Cell(0, 0))
	assert.NotEqual(t, uuid.Nil, page.RunID)
	recorder.AssertExpectations(t)
}

func TestValidate_AllZeroRequiredColumnIsMissing(t *testing.T) {
	source := new(mockSource)
	source.On("FetchReport", mock.Anything, "tok", domain.VariantListingFinancials, mock.Anything).Return(
		domain.NewTable(
			[]string{"Listing ID", "Base rate", "Cleaning fee value", "rentalRevenue"},
			[][]string{{"1", "100", "0", "100"}},
		), nil)

	page, err := New(source, nil).Validate(context.Background(), request())

	require.NoError(t, err)
	assert.Nil(t, page.Result)
	assert.Equal(t, []string{"Cleaning fee value"}, page.MissingColumns)
	assert.Equal(t, []string{"Cleaning fee value"}, page.RemovedColumns)
	assert.Equal(t, uuid.Nil, page.RunID)
}

func TestValidate_RecorderFailureIsNotFatal(t *testing.T) {
	source := new(mockSource)
	source.On("FetchReport", mock.Anything, "tok", domain.VariantListingFinancials, mock.Anything).Return(financials(), nil)
	recorder := new(mockRecorder)
	recorder.On("Record", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	page, err := New(source, nil, WithRecorder(recorder)).Validate(context.Background(), request())

	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, page.RunID)
	assert.NotNil(t, page.Result)
}
