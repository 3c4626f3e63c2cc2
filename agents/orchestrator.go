package agents

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/voyago/tripdesk/log"
	"github.com/voyago/tripdesk/plugins"
	"github.com/voyago/tripdesk/plugins/core"
	"github.com/voyago/tripdesk/trip"
)

// Orchestrator plans trips by fanning out to the provider clients
// concurrently and assembling whatever came back. A failed provider costs
// its section, never the whole itinerary; only losing weather, flights and
// hotels at once aborts the plan.
type Orchestrator struct {
	Weather     plugins.WeatherClient
	Flights     plugins.FlightClient
	Hotels      plugins.HotelClient
	Attractions plugins.AttractionsClient
	Holidays    plugins.HolidayClient
	LLM         plugins.LLMClient

	// ProviderTimeout bounds each provider fetch separately
	ProviderTimeout time.Duration

	PackingRules []PackingRule
}

var _ Planner = (*Orchestrator)(nil)

// NewOrchestrator creates a planner with the default packing rules
func NewOrchestrator(timeout time.Duration) *Orchestrator {
	return &Orchestrator{
		ProviderTimeout: timeout,
		PackingRules:    DefaultPackingRules(),
	}
}

const defaultProviderTimeout = 30 * time.Second

func (o *Orchestrator) timeout() time.Duration {
	if o.ProviderTimeout > 0 {
		return o.ProviderTimeout
	}
	return defaultProviderTimeout
}

// failureFor turns a provider error into section accounting
func failureFor(section trip.Section, fallbackProvider string, err error) trip.SectionFailure {
	var perr *plugins.ProviderError
	if errors.As(err, &perr) {
		return trip.SectionFailure{Section: section, Provider: perr.Provider, Reason: perr.Reason}
	}
	reason := plugins.Reason(err)
	if errors.Is(err, context.DeadlineExceeded) {
		reason = plugins.ReasonTimeout
	}
	return trip.SectionFailure{Section: section, Provider: fallbackProvider, Reason: reason}
}

// Plan builds an itinerary for a validated request. Weather, flights and
// hotels are fetched concurrently; packing and the day plan are derived
// afterwards from whatever arrived.
func (o *Orchestrator) Plan(ctx context.Context, req trip.TripRequest) (*trip.Itinerary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	log.Infof(ctx, "planning trip %s-%s %s to %s", req.Origin, req.Destination, req.DepartDate, req.ReturnDate)

	var (
		weather    []trip.WeatherRecord
		flights    []trip.FlightOption
		hotels     []trip.HotelOption
		weatherErr error
		flightsErr error
		hotelsErr  error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		weather, weatherErr = o.fetchWeather(ctx, req)
	}()
	go func() {
		defer wg.Done()
		flights, flightsErr = o.fetchFlights(ctx, req)
	}()
	go func() {
		defer wg.Done()
		hotels, hotelsErr = o.fetchHotels(ctx, req)
	}()
	wg.Wait()

	it := &trip.Itinerary{Request: req, CreatedAt: time.Now()}

	if weatherErr != nil {
		log.Warnf(ctx, "weather unavailable: %v", weatherErr)
		it.Missing = append(it.Missing, failureFor(trip.SectionWeather, "weatherapi", weatherErr))
	} else {
		it.Weather = weather
	}

	if flightsErr != nil {
		log.Warnf(ctx, "flights unavailable: %v", flightsErr)
		it.Missing = append(it.Missing, failureFor(trip.SectionFlights, "serpapi", flightsErr))
	} else {
		selected, alternatives := SelectFlight(flights, req.Budget)
		it.Flight = selected
		it.FlightAlternatives = alternatives
	}

	if hotelsErr != nil {
		log.Warnf(ctx, "hotels unavailable: %v", hotelsErr)
		it.Missing = append(it.Missing, failureFor(trip.SectionHotels, "serpapi", hotelsErr))
	} else {
		selected, alternatives := SelectHotel(hotels, req.Budget)
		it.Hotel = selected
		it.HotelAlternatives = alternatives
	}

	if weatherErr != nil && flightsErr != nil && hotelsErr != nil {
		return nil, &PlanningFailedError{Failures: it.Missing}
	}

	// Packing depends on weather; without records there is nothing to
	// derive from and the section is reported missing alongside weather.
	if len(it.Weather) > 0 {
		packing, err := BuildPackingList(o.PackingRules, it.Weather, req.Preferences)
		if err != nil {
			log.Warnf(ctx, "packing list unavailable: %v", err)
			it.Missing = append(it.Missing, trip.SectionFailure{Section: trip.SectionPacking, Provider: "packing", Reason: "rules"})
		} else {
			it.PackingList = packing
		}
	} else {
		it.Missing = append(it.Missing, trip.SectionFailure{Section: trip.SectionPacking, Provider: "weatherapi", Reason: "no weather data"})
	}

	planner := &DayPlanner{
		Attractions: o.Attractions,
		Holidays:    o.Holidays,
		LLM:         o.LLM,
		Timeout:     o.timeout(),
	}
	days, notes := planner.Build(ctx, req, it.Weather)
	it.DayPlan = days
	it.Notes = notes

	if err := core.ValidateItinerary(ctx, it); err != nil {
		log.Warnf(ctx, "itinerary failed sanity checks: %v", err)
	}

	log.Infof(ctx, "planned trip %s-%s: %d sections missing", req.Origin, req.Destination, len(it.Missing))
	return it, nil
}

// fetchWeather fans out one forecast request per trip day. The section only
// fails when every day fails; partial day coverage is kept.
func (o *Orchestrator) fetchWeather(ctx context.Context, req trip.TripRequest) ([]trip.WeatherRecord, error) {
	if o.Weather == nil {
		return nil, &plugins.ProviderError{Provider: "weatherapi", Reason: "disabled"}
	}

	days := req.Days()
	records := make([]*trip.WeatherRecord, len(days))
	errs := make([]error, len(days))

	var wg sync.WaitGroup
	for i, day := range days {
		wg.Add(1)
		go func(i int, date string) {
			defer wg.Done()
			fetchCtx, cancel := context.WithTimeout(ctx, o.timeout())
			defer cancel()
			records[i], errs[i] = o.Weather.Forecast(fetchCtx, req.Destination, date)
		}(i, day.Format(trip.DateLayout))
	}
	wg.Wait()

	var out []trip.WeatherRecord
	var lastErr error
	for i := range days {
		if errs[i] != nil {
			lastErr = errs[i]
			continue
		}
		out = append(out, *records[i])
	}
	if len(out) == 0 {
		return nil, lastErr
	}
	return out, nil
}

func (o *Orchestrator) fetchFlights(ctx context.Context, req trip.TripRequest) ([]trip.FlightOption, error) {
	if o.Flights == nil {
		return nil, &plugins.ProviderError{Provider: "serpapi", Reason: "disabled"}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, o.timeout())
	defer cancel()

	return o.Flights.SearchFlights(fetchCtx, trip.FlightQuery{
		Origin:       strings.ToUpper(req.Origin),
		Destination:  strings.ToUpper(req.Destination),
		OutboundDate: req.DepartDate,
		ReturnDate:   req.ReturnDate,
		Adults:       req.AdultCount(),
		Currency:     req.Currency,
	})
}

func (o *Orchestrator) fetchHotels(ctx context.Context, req trip.TripRequest) ([]trip.HotelOption, error) {
	if o.Hotels == nil {
		return nil, &plugins.ProviderError{Provider: "serpapi", Reason: "disabled"}
	}

	checkOut := req.ReturnDate
	if checkOut == "" {
		// one-way trips still need a night somewhere
		if days := req.Days(); len(days) > 0 {
			checkOut = days[len(days)-1].AddDate(0, 0, 1).Format(trip.DateLayout)
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, o.timeout())
	defer cancel()

	return o.Hotels.SearchHotels(fetchCtx, trip.HotelQuery{
		Location: strings.ToUpper(req.Destination),
		CheckIn:  req.DepartDate,
		CheckOut: checkOut,
		Adults:   req.AdultCount(),
		Currency: req.Currency,
	})
}
