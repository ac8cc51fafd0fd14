package commands

import (
	"fmt"
	"time"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/spf13/cobra"
)

type criteriaFlags struct {
	from     string
	to       string
	dateType string
	status   string
	channels []int
}

func (f *criteriaFlags) bind(cmd *cobra.Command, defaultChannels []int) {
	defaults := domain.DefaultFilterCriteria()
	cmd.Flags().StringVar(&f.from, "from", defaults.From(), "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", defaults.To(), "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.dateType, "date-type", string(defaults.DateType),
		"Date type: arrivalDate, departureDate or reservationDate")
	cmd.Flags().StringVar(&f.status, "status", string(defaults.Status), "Reservation status: new, cancelled or empty")
	cmd.Flags().IntSliceVar(&f.channels, "channel", defaultChannels, "Channel ids (2018 Airbnb, 2005 Booking.com, 2000 Direct)")
}

func (f *criteriaFlags) criteria() (domain.FilterCriteria, error) {
	from, err := time.Parse(domain.DateLayout, f.from)
	if err != nil {
		return domain.FilterCriteria{}, fmt.Errorf("invalid --from %q: %w", f.from, err)
	}
	to, err := time.Parse(domain.DateLayout, f.to)
	if err != nil {
		return domain.FilterCriteria{}, fmt.Errorf("invalid --to %q: %w", f.to, err)
	}
	dateType, err := domain.ParseDateType(f.dateType)
	if err != nil {
		return domain.FilterCriteria{}, err
	}
	status, err := domain.ParseStatus(f.status)
	if err != nil {
		return domain.FilterCriteria{}, err
	}

	channels := make([]domain.ChannelID, 0, len(f.channels))
	for _, id := range f.channels {
		c := domain.ChannelID(id)
		if _, ok := domain.Channels[c]; !ok {
			return domain.FilterCriteria{}, fmt.Errorf("unknown channel id %d", id)
		}
		channels = append(channels, c)
	}

	return domain.FilterCriteria{
		FromDate:   from,
		ToDate:     to,
		DateType:   dateType,
		Status:     status,
		ChannelIDs: channels,
	}, nil
}
