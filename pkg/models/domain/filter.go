package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format expected by the upstream report endpoints.
const DateLayout = "2006-01-02"

type DateType string

const (
	DateTypeArrival     DateType = "arrivalDate"
	DateTypeDeparture   DateType = "departureDate"
	DateTypeReservation DateType = "reservationDate"
)

// DateTypes lists the accepted date types in display order.
var DateTypes = []DateType{DateTypeArrival, DateTypeDeparture, DateTypeReservation}

func ParseDateType(s string) (DateType, error) {
	for _, dt := range DateTypes {
		if string(dt) == s {
			return dt, nil
		}
	}
	return "", fmt.Errorf("unknown date type %q", s)
}

type Status string

const (
	StatusNew         Status = "new"
	StatusCancelled   Status = "cancelled"
	StatusUnspecified Status = ""
)

// Statuses lists the accepted reservation statuses in display order.
var Statuses = []Status{StatusNew, StatusCancelled, StatusUnspecified}

func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

type ChannelID int

const (
	ChannelAirbnbOfficial ChannelID = 2018
	ChannelBookingCom     ChannelID = 2005
	ChannelDirect         ChannelID = 2000
)

// Channels maps the supported channel ids to their display labels.
var Channels = map[ChannelID]string{
	ChannelAirbnbOfficial: "Airbnb Official",
	ChannelBookingCom:     "Booking.com",
	ChannelDirect:         "Direct",
}

// ChannelOrder is the order channels are offered in.
var ChannelOrder = []ChannelID{ChannelAirbnbOfficial, ChannelBookingCom, ChannelDirect}

func (c ChannelID) Label() string {
	if label, ok := Channels[c]; ok {
		return label
	}
	return fmt.Sprintf("Channel %d", int(c))
}

// FilterCriteria carries the user's report selection. It is built once per
// interaction and never mutated afterwards.
type FilterCriteria struct {
	FromDate   time.Time
	ToDate     time.Time
	DateType   DateType
	Status     Status
	ChannelIDs []ChannelID
}

// DefaultFilterCriteria mirrors the dashboard's initial control values.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		FromDate: time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		ToDate:   time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC),
		DateType: DateTypeArrival,
		Status:   StatusNew,
	}
}

func (f FilterCriteria) From() string {
	return f.FromDate.Format(DateLayout)
}

func (f FilterCriteria) To() string {
	return f.ToDate.Format(DateLayout)
}
