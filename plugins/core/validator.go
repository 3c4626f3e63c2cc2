package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/voyago/tripdesk/log"
	"github.com/voyago/tripdesk/trip"
)

// ValidateItinerary checks an assembled itinerary for internal consistency.
// Failures here mean a provider returned something nonsensical, not that the
// trip cannot be planned.
func ValidateItinerary(ctx context.Context, it *trip.Itinerary) error {
	var errors []string

	days := it.Request.Days()
	if len(days) == 0 {
		errors = append(errors, "request has no plannable days")
	}

	if it.Flight != nil {
		if it.Flight.Price < 0 {
			errors = append(errors, fmt.Sprintf("flight price is negative: %.2f", it.Flight.Price))
		}
		if it.Flight.Stops < 0 {
			errors = append(errors, fmt.Sprintf("flight stop count is negative: %d", it.Flight.Stops))
		}
		if it.Request.Budget > 0 && it.Flight.Price > it.Request.Budget {
			errors = append(errors, fmt.Sprintf("selected flight (%.2f) exceeds budget (%.2f)", it.Flight.Price, it.Request.Budget))
		}
	}

	if it.Hotel != nil {
		if it.Hotel.NightlyPrice < 0 {
			errors = append(errors, fmt.Sprintf("hotel nightly price is negative: %.2f", it.Hotel.NightlyPrice))
		}
		if it.Hotel.Rating < 0 || it.Hotel.Rating > 5 {
			errors = append(errors, fmt.Sprintf("hotel rating out of range: %.1f", it.Hotel.Rating))
		}
	}

	if len(it.Weather) > len(days) {
		errors = append(errors, fmt.Sprintf("more weather records (%d) than trip days (%d)", len(it.Weather), len(days)))
	}
	if len(it.DayPlan) > len(days) {
		errors = append(errors, fmt.Sprintf("more day plans (%d) than trip days (%d)", len(it.DayPlan), len(days)))
	}

	if len(it.PackingList) > 0 && len(it.Weather) == 0 {
		errors = append(errors, "packing list present without weather data")
	}

	if len(errors) > 0 {
		msg := fmt.Sprintf("itinerary validation failed with %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
		log.Errorf(ctx, "ValidateItinerary: %s", msg)
		return fmt.Errorf("%s", msg)
	}

	log.Debugf(ctx, "ValidateItinerary: validation passed")
	return nil
}
