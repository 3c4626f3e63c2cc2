package agents

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/tripdesk/plugins"
	"github.com/voyago/tripdesk/trip"
)

type fakeWeather struct {
	mu    sync.Mutex
	calls []string
	err   error
	fail  map[string]error
}

func (f *fakeWeather) Forecast(ctx context.Context, location, date string) (*trip.WeatherRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, date)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if err, ok := f.fail[date]; ok {
		return nil, err
	}
	return &trip.WeatherRecord{
		Date:         date,
		Location:     location,
		Condition:    "Sunny",
		HighC:        24,
		LowC:         14,
		PrecipChance: 10,
	}, nil
}

type fakeFlights struct {
	flights []trip.FlightOption
	err     error
	delay   time.Duration
}

func (f *fakeFlights) SearchFlights(ctx context.Context, q trip.FlightQuery) ([]trip.FlightOption, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.flights, nil
}

type fakeHotels struct {
	hotels []trip.HotelOption
	err    error
	delay  time.Duration
}

func (f *fakeHotels) SearchHotels(ctx context.Context, q trip.HotelQuery) ([]trip.HotelOption, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.hotels, nil
}

func parisRequest() trip.TripRequest {
	return trip.TripRequest{
		Origin:      "JFK",
		Destination: "CDG",
		DepartDate:  "2024-06-01",
		ReturnDate:  "2024-06-05",
		Budget:      2000,
	}
}

func sampleFlights() []trip.FlightOption {
	return []trip.FlightOption{
		{Carrier: "Connector Air", FlightNumber: "CN 1", Price: 850, Stops: 2, Currency: "USD"},
		{Carrier: "Air France", FlightNumber: "AF 7", Price: 1250, Stops: 0, Currency: "USD"},
		{Carrier: "Luxury Lines", FlightNumber: "LX 9", Price: 2400, Stops: 0, Currency: "USD"},
	}
}

func sampleHotels() []trip.HotelOption {
	return []trip.HotelOption{
		{Name: "Hotel du Nord", NightlyPrice: 95, Rating: 4.1, Currency: "USD"},
		{Name: "Hotel Lutetia", NightlyPrice: 180, Rating: 4.6, Currency: "USD"},
	}
}

func newTestOrchestrator(w plugins.WeatherClient, f plugins.FlightClient, h plugins.HotelClient) *Orchestrator {
	o := NewOrchestrator(2 * time.Second)
	o.Weather = w
	o.Flights = f
	o.Hotels = h
	return o
}

func TestPlan_AllProvidersHealthy(t *testing.T) {
	weather := &fakeWeather{}
	o := newTestOrchestrator(weather, &fakeFlights{flights: sampleFlights()}, &fakeHotels{hotels: sampleHotels()})

	it, err := o.Plan(context.Background(), parisRequest())
	require.NoError(t, err)
	assert.True(t, it.Complete())

	// four days: departure inclusive, return day exclusive
	require.Len(t, it.Weather, 4)
	assert.Equal(t, "2024-06-01", it.Weather[0].Date)
	assert.Equal(t, "2024-06-04", it.Weather[3].Date)

	// cheapest in-budget flight wins
	require.NotNil(t, it.Flight)
	assert.Equal(t, "CN 1", it.Flight.FlightNumber)
	assert.LessOrEqual(t, it.Flight.Price, it.Request.Budget)
	assert.Len(t, it.FlightAlternatives, 2)

	// best rated hotel wins
	require.NotNil(t, it.Hotel)
	assert.Equal(t, "Hotel Lutetia", it.Hotel.Name)

	assert.NotEmpty(t, it.PackingList)
	assert.Len(t, it.DayPlan, 4)
}

func TestPlan_InvalidRequest(t *testing.T) {
	o := newTestOrchestrator(&fakeWeather{}, &fakeFlights{}, &fakeHotels{})

	_, err := o.Plan(context.Background(), trip.TripRequest{Origin: "NEWYORK", Destination: "CDG", DepartDate: "2024-06-01"})
	require.Error(t, err)
	var ire *trip.InvalidRequestError
	assert.ErrorAs(t, err, &ire)
}

func TestPlan_HotelTimeoutYieldsPartial(t *testing.T) {
	o := newTestOrchestrator(
		&fakeWeather{},
		&fakeFlights{flights: sampleFlights()},
		&fakeHotels{delay: 5 * time.Second},
	)
	o.ProviderTimeout = 100 * time.Millisecond

	it, err := o.Plan(context.Background(), parisRequest())
	require.NoError(t, err)
	assert.False(t, it.Complete())

	require.NotNil(t, it.Flight)
	assert.NotEmpty(t, it.Weather)
	assert.Nil(t, it.Hotel)

	failure, ok := it.MissingSection(trip.SectionHotels)
	require.True(t, ok)
	assert.Equal(t, plugins.ReasonTimeout, failure.Reason)
}

func TestPlan_AllProvidersFail(t *testing.T) {
	boom := &plugins.ProviderError{Provider: "serpapi", Reason: plugins.ReasonStatus}
	o := newTestOrchestrator(
		&fakeWeather{err: &plugins.ProviderError{Provider: "weatherapi", Reason: plugins.ReasonNetwork}},
		&fakeFlights{err: boom},
		&fakeHotels{err: boom},
	)

	_, err := o.Plan(context.Background(), parisRequest())
	require.Error(t, err)

	var pfe *PlanningFailedError
	require.ErrorAs(t, err, &pfe)
	assert.Len(t, pfe.Failures, 3)
}

func TestPlan_WeatherFailureDropsPacking(t *testing.T) {
	o := newTestOrchestrator(
		&fakeWeather{err: &plugins.ProviderError{Provider: "weatherapi", Reason: plugins.ReasonStatus}},
		&fakeFlights{flights: sampleFlights()},
		&fakeHotels{hotels: sampleHotels()},
	)

	it, err := o.Plan(context.Background(), parisRequest())
	require.NoError(t, err)

	assert.Empty(t, it.Weather)
	assert.Empty(t, it.PackingList)
	_, weatherMissing := it.MissingSection(trip.SectionWeather)
	_, packingMissing := it.MissingSection(trip.SectionPacking)
	assert.True(t, weatherMissing)
	assert.True(t, packingMissing)

	// the day plan is still produced, weather-blind
	assert.Len(t, it.DayPlan, 4)
}

func TestPlan_PartialWeatherKeepsSection(t *testing.T) {
	weather := &fakeWeather{fail: map[string]error{
		"2024-06-03": &plugins.ProviderError{Provider: "weatherapi", Reason: plugins.ReasonStatus},
	}}
	o := newTestOrchestrator(weather, &fakeFlights{flights: sampleFlights()}, &fakeHotels{hotels: sampleHotels()})

	it, err := o.Plan(context.Background(), parisRequest())
	require.NoError(t, err)

	assert.Len(t, it.Weather, 3)
	_, missing := it.MissingSection(trip.SectionWeather)
	assert.False(t, missing)
}

func TestPlan_OneWayTrip(t *testing.T) {
	o := newTestOrchestrator(&fakeWeather{}, &fakeFlights{flights: sampleFlights()}, &fakeHotels{hotels: sampleHotels()})

	req := parisRequest()
	req.ReturnDate = ""
	it, err := o.Plan(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, it.Weather, 1)
	assert.Len(t, it.DayPlan, 1)
}
