// Package payload builds request bodies for the three finance report endpoints.
// Builders are pure: they never fail, perform no I/O and do not validate date order.
package payload

import (
	"strconv"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
)

const (
	formatCSV       = "csv"
	sortByArrival   = "arrivalDate"
	sortOrderAsc    = "asc"
	delimiterTab    = "tab"
	delimiterComma  = "comma"
	keyListingMapID = "listingMapIds"
	keyChannelIDs   = "channelIds"
	keyStatuses     = "statuses"
)

// Calculated builds the url-encoded body of the calculated report. listingIDs
// must be non-empty; callers abort before building when it is not.
func Calculated(criteria domain.FilterCriteria, listingIDs []int64) *domain.EncodedPayload {
	p := &domain.EncodedPayload{}

	ids := make([]string, len(listingIDs))
	for i, id := range listingIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	p.AddIndexed(keyListingMapID, ids)

	p.Add("fromDate", criteria.From())
	p.Add("toDate", criteria.To())
	p.Add("dateType", string(criteria.DateType))

	channels := make([]string, len(criteria.ChannelIDs))
	for i, c := range criteria.ChannelIDs {
		channels[i] = strconv.Itoa(int(c))
	}
	p.AddIndexed(keyChannelIDs, channels)

	p.AddIndexed(keyStatuses, []string{string(criteria.Status)})

	p.Add("format", formatCSV)
	p.Add("sortBy", sortByArrival)
	p.Add("sortOrder", sortOrderAsc)
	p.Add("delimiter", delimiterTab)
	return p
}

// Standard builds the JSON body of the standard report.
func Standard(criteria domain.FilterCriteria) *domain.StructuredPayload {
	channels := make([]domain.ChannelID, 0, len(criteria.ChannelIDs))
	channels = append(channels, criteria.ChannelIDs...)

	return &domain.StructuredPayload{
		FromDate:   criteria.From(),
		ToDate:     criteria.To(),
		DateType:   criteria.DateType,
		ChannelIDs: channels,
		Format:     formatCSV,
		SortBy:     sortByArrival,
		SortOrder:  sortOrderAsc,
		Delim:      delimiterComma,
	}
}

// ListingFinancials builds the JSON body of the listing financials report.
// The channel filter is always Direct bookings only, whatever was selected.
func ListingFinancials(criteria domain.FilterCriteria) *domain.StructuredPayload {
	return &domain.StructuredPayload{
		FromDate:   criteria.From(),
		ToDate:     criteria.To(),
		ChannelIDs: []domain.ChannelID{domain.ChannelDirect},
		Format:     formatCSV,
		SortBy:     sortByArrival,
		SortOrder:  sortOrderAsc,
		Delim:      delimiterComma,
	}
}

// Build dispatches on the variant. listingIDs is only read for the calculated report.
func Build(variant domain.ReportVariant, criteria domain.FilterCriteria, listingIDs []int64) domain.ReportPayload {
	switch variant {
	case domain.VariantCalculated:
		return Calculated(criteria, listingIDs)
	case domain.VariantListingFinancials:
		return ListingFinancials(criteria)
	default:
		return Standard(criteria)
	}
}
