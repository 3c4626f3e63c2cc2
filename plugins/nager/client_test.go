package nager

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/tripdesk/plugins"
)

func TestNewClient(t *testing.T) {
	client := NewClient(nil, nil)
	assert.NotNil(t, client)
	assert.Equal(t, "https://date.nager.at/api/v3", client.BaseURL)
	assert.NotNil(t, client.HTTPClient)
}

func TestPublicHolidays(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/PublicHolidays/2024/FR", r.URL.Path)
		w.Write([]byte(`[
			{"date": "2024-05-20", "localName": "Lundi de Pentecôte", "name": "Whit Monday", "countryCode": "FR", "global": true},
			{"date": "2024-07-14", "localName": "Fête nationale", "name": "Bastille Day", "countryCode": "FR", "global": true}
		]`))
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, HTTPClient: &http.Client{Timeout: 2 * time.Second}}
	byDate, err := client.PublicHolidays(context.Background(), "FR", 2024)
	require.NoError(t, err)
	assert.Len(t, byDate, 2)
	assert.Equal(t, "Bastille Day", byDate["2024-07-14"])
	assert.Equal(t, "Whit Monday", byDate["2024-05-20"])
}

func TestPublicHolidays_UnknownCountry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, HTTPClient: &http.Client{Timeout: 2 * time.Second}}
	_, err := client.PublicHolidays(context.Background(), "ZZ", 2024)
	require.Error(t, err)

	var perr *plugins.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "nager", perr.Provider)
	assert.Equal(t, plugins.ReasonStatus, perr.Reason)
}

func TestPublicHolidays_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"oops"`))
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, HTTPClient: &http.Client{Timeout: 2 * time.Second}}
	_, err := client.PublicHolidays(context.Background(), "FR", 2024)
	require.Error(t, err)

	var perr *plugins.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, plugins.ReasonPayload, perr.Reason)
}
