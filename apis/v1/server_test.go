package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/tripdesk/agents"
	"github.com/voyago/tripdesk/trip"
)

type stubPlanner struct {
	itinerary *trip.Itinerary
	err       error
}

func (s *stubPlanner) Plan(ctx context.Context, req trip.TripRequest) (*trip.Itinerary, error) {
	if s.err != nil {
		return nil, s.err
	}
	it := s.itinerary
	it.Request = req
	return it, nil
}

func newServer(p agents.Planner) *Server {
	return &Server{Planner: p}
}

const validBody = `{
	"origin": "JFK",
	"destination": "CDG",
	"depart_date": "2024-06-01",
	"return_date": "2024-06-05",
	"budget": 2000
}`

func TestPlanItinerary(t *testing.T) {
	planner := &stubPlanner{itinerary: &trip.Itinerary{
		Flight: &trip.FlightOption{Carrier: "Air France", FlightNumber: "AF 7", Price: 1250, Currency: "USD"},
	}}
	server := newServer(planner)

	req := httptest.NewRequest("POST", "/v1/itineraries", strings.NewReader(validBody))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Contains(t, rec.Body.String(), `"complete":true`)
	assert.Contains(t, rec.Body.String(), "Air France")
}

func TestPlanItinerary_InvalidRequest(t *testing.T) {
	server := newServer(&stubPlanner{itinerary: &trip.Itinerary{}})

	req := httptest.NewRequest("POST", "/v1/itineraries", strings.NewReader(`{"origin": "NEWYORK"}`))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPlanItinerary_MalformedBody(t *testing.T) {
	server := newServer(&stubPlanner{itinerary: &trip.Itinerary{}})

	req := httptest.NewRequest("POST", "/v1/itineraries", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlanItinerary_PlanningFailed(t *testing.T) {
	server := newServer(&stubPlanner{err: &agents.PlanningFailedError{
		Failures: []trip.SectionFailure{
			{Section: trip.SectionWeather, Provider: "weatherapi", Reason: "network"},
			{Section: trip.SectionFlights, Provider: "serpapi", Reason: "status"},
			{Section: trip.SectionHotels, Provider: "serpapi", Reason: "status"},
		},
	}})

	req := httptest.NewRequest("POST", "/v1/itineraries", strings.NewReader(validBody))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "planning failed")
}

func TestChat_NoAgent(t *testing.T) {
	server := newServer(&stubPlanner{})

	req := httptest.NewRequest("POST", "/v1/chat", strings.NewReader(`{"query": "hi"}`))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestChat_MissingQuery(t *testing.T) {
	server := newServer(&stubPlanner{})
	server.Agent = &agents.TripAgent{}

	req := httptest.NewRequest("POST", "/v1/chat", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	server := newServer(&stubPlanner{})

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestRequestIDPropagated(t *testing.T) {
	server := newServer(&stubPlanner{})

	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set("X-Request-Id", "fixed-id")
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, "fixed-id", rec.Header().Get("X-Request-Id"))
}
