// Package agents assembles itineraries: a deterministic orchestrator that
// fans out to providers, and a tool-calling agent for free-form chat.
package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/voyago/tripdesk/trip"
)

// Planner produces an itinerary for a validated trip request
type Planner interface {
	Plan(ctx context.Context, req trip.TripRequest) (*trip.Itinerary, error)
}

// PlanningFailedError reports that no usable itinerary could be produced.
// It carries the failure of every section that was attempted.
type PlanningFailedError struct {
	Failures []trip.SectionFailure
}

func (e *PlanningFailedError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s (%s: %s)", f.Section, f.Provider, f.Reason))
	}
	return fmt.Sprintf("planning failed: all sections unavailable: %s", strings.Join(parts, ", "))
}
