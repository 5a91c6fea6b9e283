package venue

import (
	"fmt"

	"github.com/riskibarqy/squadup/internal/domain/sport"
)

// DefaultHourlyPrice applies to venues stored without a price.
const DefaultHourlyPrice = 50.0

// Venue is a bookable facility. Venues are seeded administratively.
type Venue struct {
	ID          string
	Name        string
	Address     string
	Sport       sport.Sport
	HourlyPrice float64
	ImageName   string
}

func (v Venue) Price() float64 {
	if v.HourlyPrice <= 0 {
		return DefaultHourlyPrice
	}
	return v.HourlyPrice
}

func (v Venue) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("venue id is required")
	}
	if v.Name == "" {
		return fmt.Errorf("venue name is required")
	}
	if !v.Sport.Valid() {
		return fmt.Errorf("venue sport %q is invalid", v.Sport)
	}
	if v.HourlyPrice < 0 {
		return fmt.Errorf("venue hourly price must not be negative")
	}
	return nil
}

type Filter struct {
	Sport sport.Sport
}
