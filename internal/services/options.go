package services

import (
	"errors"
	"fmt"
	"time"

	"pick-analytics-service/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Options parameterize one engine run. The zero value is not usable; start
// from DefaultOptions.
type Options struct {
	RowChangePenalty        int               `validate:"gte=0"`
	GroupBy                 domain.GroupField `validate:"oneof=Delivery TransferOrder"`
	IdleThresholdMinutes    float64           `validate:"gte=0"`
	GrossDurationCapSeconds float64           `validate:"gt=0"`
	Breaks                  domain.BreakCalendar
	KLTStart                string `validate:"len=20,numeric"`
	KLTEnd                  string `validate:"len=20,numeric"`
}

// ErrInvalidOptions wraps every Options validation failure.
var ErrInvalidOptions = errors.New("invalid analysis options")

var validate = validator.New(validator.WithRequiredStructEnabled())

func DefaultOptions() Options {
	return Options{
		RowChangePenalty:        domain.DefaultRowChangePenalty,
		GroupBy:                 domain.GroupByDelivery,
		IdleThresholdMinutes:    15,
		GrossDurationCapSeconds: domain.DefaultGrossDurationCap.Seconds(),
		Breaks:                  domain.DefaultBreakCalendar(),
		KLTStart:                domain.DefaultKLTStart,
		KLTEnd:                  domain.DefaultKLTEnd,
	}
}

func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if o.KLTEnd < o.KLTStart {
		return fmt.Errorf("%w: KLT range end %q precedes start %q", ErrInvalidOptions, o.KLTEnd, o.KLTStart)
	}
	return nil
}

// Fingerprint identifies the options for cache keys. The idle threshold is
// left out: it filters the delay report and does not change the analysis.
func (o Options) Fingerprint() string {
	return fmt.Sprintf(
		"penalty=%d group=%s cap=%g breaks=%s klt=%s..%s",
		o.RowChangePenalty, o.GroupBy, o.GrossDurationCapSeconds, o.Breaks, o.KLTStart, o.KLTEnd,
	)
}

func (o Options) grossCap() time.Duration {
	return time.Duration(o.GrossDurationCapSeconds * float64(time.Second))
}
