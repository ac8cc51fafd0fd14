package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func discrepancies() *domain.Table {
	return domain.NewTable(domain.DiscrepancyColumns, [][]string{
		{"102", "50", "10", "59", "60"},
		{"103", "", "10", "10", ""},
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"", FormatCSV, false},
		{"CSV", FormatCSV, false},
		{"xlsx", FormatXLSX, false},
		{" pdf ", FormatPDF, false},
		{"docx", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRender_CSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Render(&buf, FormatCSV, "ignored", discrepancies()))

	assert.Equal(t,
		"Listing ID,Base rate,Cleaning fee value,rentalRevenue,Calculated Revenue\n102,50,10,59,60\n103,,10,10,\n",
		buf.String())
	assert.Equal(t, "rental_revenue_discrepancies.csv", FormatCSV.FileName(DiscrepanciesFileName))
}

func TestRender_XLSX(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Render(&buf, FormatXLSX, "Rental Revenue Discrepancies", discrepancies()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Rental Revenue Discrepancies")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.DiscrepancyColumns, rows[0])
	assert.Equal(t, []string{"102", "50", "10", "59", "60"}, rows[1])
}

func TestRender_PDF(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Render(&buf, FormatPDF, "Rental Revenue Discrepancies", discrepancies()))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

type mockPutObject struct {
	mock.Mock
}

func (m *mockPutObject) PutObject(
	ctx context.Context,
	params *s3.PutObjectInput,
	_ ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestS3Uploader_Upload(t *testing.T) {
	// Given
	client := new(mockPutObject)
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		body, _ := io.ReadAll(in.Body)
		return *in.Bucket == "atlas" &&
			*in.Key == "discrepancies/2024-03-01/rental_revenue_discrepancies.csv" &&
			*in.ContentType == "text/csv" &&
			string(body) == "a\n1\n"
	})).Return(&s3.PutObjectOutput{}, nil)

	u := NewS3Uploader(client, "atlas", "discrepancies")
	u.now = func() time.Time { return time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC) }

	// When
	key, err := u.Upload(context.Background(), "rental_revenue_discrepancies.csv", "text/csv", []byte("a\n1\n"))

	// Then
	require.NoError(t, err)
	assert.Equal(t, "discrepancies/2024-03-01/rental_revenue_discrepancies.csv", key)
	client.AssertExpectations(t)
}

func TestS3Uploader_UploadError(t *testing.T) {
	client := new(mockPutObject)
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := NewS3Uploader(client, "atlas", "").Upload(context.Background(), "x.csv", "text/csv", nil)

	assert.ErrorContains(t, err, "access denied")
}
