package domain

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// ReportVariant identifies one of the upstream financial report endpoints.
type ReportVariant string

const (
	VariantCalculated        ReportVariant = "calculated"
	VariantStandard          ReportVariant = "standard"
	VariantListingFinancials ReportVariant = "listing-financials"
)

var ReportVariants = []ReportVariant{VariantCalculated, VariantStandard, VariantListingFinancials}

func ParseReportVariant(s string) (ReportVariant, error) {
	for _, v := range ReportVariants {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown report variant %q", s)
}

// Path returns the endpoint path relative to the API base URL.
func (v ReportVariant) Path() string {
	switch v {
	case VariantCalculated:
		return "/finance/report/calculated"
	case VariantStandard:
		return "/finance/report/standard"
	case VariantListingFinancials:
		return "/finance/report/listingFinancials"
	}
	return ""
}

func (v ReportVariant) Title() string {
	switch v {
	case VariantCalculated:
		return "CSV Analysis"
	case VariantStandard:
		return "Finance Standard Report"
	case VariantListingFinancials:
		return "Listing Financial Report"
	}
	return string(v)
}

// FileName is the suggested download name for a full report of this variant.
func (v ReportVariant) FileName() string {
	switch v {
	case VariantStandard:
		return "finance_standard_report"
	case VariantListingFinancials:
		return "listing_financials_report"
	}
	return "calculated_report"
}

const (
	ContentTypeForm = "application/x-www-form-urlencoded"
	ContentTypeJSON = "application/json"
)

// ReportPayload is a request body for one of the report endpoints.
type ReportPayload interface {
	ContentType() string
	Body() ([]byte, error)
	// Delimiter is the field separator the endpoint answers with.
	Delimiter() rune
}

type Pair struct {
	Key   string
	Value string
}

// EncodedPayload is an ordered url-encoded key/value sequence.
type EncodedPayload struct {
	Pairs []Pair
}

func (p *EncodedPayload) Add(key, value string) {
	p.Pairs = append(p.Pairs, Pair{Key: key, Value: value})
}

// AddIndexed appends key[0]=v0&key[1]=v1... in the given order.
func (p *EncodedPayload) AddIndexed(key string, values []string) {
	for i, v := range values {
		p.Add(fmt.Sprintf("%s[%d]", key, i), v)
	}
}

// Get returns the value of the first pair with the given key.
func (p *EncodedPayload) Get(key string) (string, bool) {
	for _, pair := range p.Pairs {
		if pair.Key == key {
			return pair.Value, true
		}
	}
	return "", false
}

// Encode joins the escaped pairs with '&', keeping their order.
func (p *EncodedPayload) Encode() string {
	parts := make([]string, 0, len(p.Pairs))
	for _, pair := range p.Pairs {
		parts = append(parts, url.QueryEscape(pair.Key)+"="+url.QueryEscape(pair.Value))
	}
	return strings.Join(parts, "&")
}

func (p *EncodedPayload) ContentType() string { return ContentTypeForm }

func (p *EncodedPayload) Body() ([]byte, error) { return []byte(p.Encode()), nil }

func (p *EncodedPayload) Delimiter() rune { return '\t' }

// StructuredPayload is the JSON body of the standard and listing-financials endpoints.
type StructuredPayload struct {
	FromDate   string      `json:"fromDate"`
	ToDate     string      `json:"toDate"`
	DateType   DateType    `json:"dateType,omitempty"`
	ChannelIDs []ChannelID `json:"channelIds"`
	Format     string      `json:"format"`
	SortBy     string      `json:"sortBy"`
	SortOrder  string      `json:"sortOrder"`
	Delim      string      `json:"delimiter"`
}

func (p *StructuredPayload) ContentType() string { return ContentTypeJSON }

func (p *StructuredPayload) Body() ([]byte, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report payload: %w", err)
	}
	return body, nil
}

func (p *StructuredPayload) Delimiter() rune { return ',' }
