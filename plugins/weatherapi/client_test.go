package weatherapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/tripdesk/plugins"
)

func fixedNow() time.Time {
	return time.Date(2024, 5, 28, 12, 0, 0, 0, time.UTC)
}

func newTestClient(serverURL string) *Client {
	return &Client{
		BaseURL:    serverURL,
		APIKey:     "test-key",
		HTTPClient: &http.Client{Timeout: 2 * time.Second},
		Now:        fixedNow,
	}
}

func TestForecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast.json", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("key"))
		assert.Equal(t, "CDG", q.Get("q"))
		assert.Equal(t, "2024-06-01", q.Get("dt"))
		assert.Equal(t, "1", q.Get("days"))
		assert.Equal(t, "no", q.Get("aqi"))
		assert.Equal(t, "no", q.Get("alerts"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"location": {"name": "Paris", "country": "France"},
			"forecast": {"forecastday": [{
				"date": "2024-06-01",
				"day": {
					"maxtemp_c": 24.5,
					"mintemp_c": 14.2,
					"daily_chance_of_rain": 20,
					"condition": {"text": "Partly cloudy"}
				}
			}]}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	record, err := client.Forecast(context.Background(), "CDG", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", record.Date)
	assert.Equal(t, "Paris", record.Location)
	assert.Equal(t, "France", record.Country)
	assert.Equal(t, "Partly cloudy", record.Condition)
	assert.Equal(t, 24.5, record.HighC)
	assert.Equal(t, 14.2, record.LowC)
	assert.Equal(t, 20, record.PrecipChance)
}

func TestForecast_DateBounds(t *testing.T) {
	client := newTestClient("http://unused.invalid")

	_, err := client.Forecast(context.Background(), "CDG", "2024-05-01")
	require.Error(t, err)
	var perr *plugins.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "weatherapi", perr.Provider)
	assert.Equal(t, "date in the past", perr.Reason)

	_, err = client.Forecast(context.Background(), "CDG", "2024-07-15")
	require.Error(t, err)
	perr = nil
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "weatherapi", perr.Provider)
	assert.Equal(t, "forecast beyond horizon", perr.Reason)

	_, err = client.Forecast(context.Background(), "CDG", "June 1st")
	require.Error(t, err)
}

func TestForecast_EveningRequestForToday(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"location": {"name": "Paris", "country": "France"},
			"forecast": {"forecastday": [{
				"date": "2024-05-28",
				"day": {"maxtemp_c": 20, "mintemp_c": 10, "daily_chance_of_rain": 0, "condition": {"text": "Sunny"}}
			}]}
		}`))
	}))
	defer server.Close()

	// 23:30 in a zone behind UTC: the local calendar day must still count
	// as today, not as a past date.
	client := newTestClient(server.URL)
	client.Now = func() time.Time {
		return time.Date(2024, 5, 28, 23, 30, 0, 0, time.FixedZone("PDT", -7*60*60))
	}

	record, err := client.Forecast(context.Background(), "CDG", "2024-05-28")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-28", record.Date)
}

func TestForecast_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Forecast(context.Background(), "CDG", "2024-06-01")
	require.Error(t, err)

	var perr *plugins.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "weatherapi", perr.Provider)
	assert.Equal(t, plugins.ReasonStatus, perr.Reason)
}

func TestForecast_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"forecast": `))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Forecast(context.Background(), "CDG", "2024-06-01")
	require.Error(t, err)

	var perr *plugins.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, plugins.ReasonPayload, perr.Reason)
}

func TestForecast_EmptyForecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"location": {"name": "Paris"}, "forecast": {"forecastday": []}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Forecast(context.Background(), "CDG", "2024-06-01")
	require.Error(t, err)

	var perr *plugins.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, plugins.ReasonPayload, perr.Reason)
}

func TestForecast_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Forecast(ctx, "CDG", "2024-06-01")
	require.Error(t, err)

	var perr *plugins.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, plugins.ReasonTimeout, perr.Reason)
	assert.True(t, errors.Is(err, context.DeadlineExceeded) || perr.Reason == plugins.ReasonTimeout)
}
