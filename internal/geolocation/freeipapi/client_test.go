package freeipapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/geolocation/freeipapi"
	"minibank/internal/geolocation/models"
)

func mustParse(t *testing.T, s string) models.IPAddress {
	t.Helper()
	ip, err := models.ParseIPAddress(s)
	require.NoError(t, err)
	return ip
}

func TestGetLocationByIP(t *testing.T) {
	t.Run("decodes a successful response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/8.8.8.8", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"countryName": "United States",
				"cityName": "Mountain View",
				"latitude": 37.386,
				"longitude": -122.0838
			}`))
		}))
		defer srv.Close()

		client := freeipapi.New(srv.URL, time.Second)
		loc, err := client.GetLocationByIP(context.Background(), mustParse(t, "8.8.8.8"))
		require.NoError(t, err)
		assert.Equal(t, "United States", loc.Country)
		assert.Equal(t, "Mountain View", loc.City)
		assert.InDelta(t, 37.386, loc.Latitude, 0.0001)
		assert.InDelta(t, -122.0838, loc.Longitude, 0.0001)
	})

	t.Run("rejects a non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		client := freeipapi.New(srv.URL, time.Second)
		_, err := client.GetLocationByIP(context.Background(), mustParse(t, "8.8.8.8"))
		require.Error(t, err)
		assert.ErrorContains(t, err, "unexpected status 429")
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		client := freeipapi.New(srv.URL, time.Second)
		_, err := client.GetLocationByIP(context.Background(), mustParse(t, "8.8.8.8"))
		require.Error(t, err)
		assert.ErrorContains(t, err, "decode response")
	})

	t.Run("rejects a response missing coordinates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"countryName": "United States", "cityName": "Mountain View"}`))
		}))
		defer srv.Close()

		client := freeipapi.New(srv.URL, time.Second)
		_, err := client.GetLocationByIP(context.Background(), mustParse(t, "8.8.8.8"))
		require.Error(t, err)
		assert.ErrorContains(t, err, "incomplete response")
	})

	t.Run("surfaces a connection failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		client := freeipapi.New(srv.URL, time.Second)
		_, err := client.GetLocationByIP(context.Background(), mustParse(t, "8.8.8.8"))
		require.Error(t, err)
	})
}
