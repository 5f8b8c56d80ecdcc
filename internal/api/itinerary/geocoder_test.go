package itinerary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakbaguio/peak-baguio/config"
	"github.com/peakbaguio/peak-baguio/internal/types"
)

func newTestGeocoder(baseURL string) *HTTPGeocoder {
	return NewHTTPGeocoder(config.GeocodingConfig{
		BaseURL:       baseURL,
		APIKey:        "test-key",
		CityQualifier: testCityQualifier,
		RatePerSecond: 1000,
	})
}

func TestHTTPGeocoder_QualifiesQueryWithCity(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"geometry":{"lat":16.4119,"lng":120.5933}}]}`))
	}))
	defer srv.Close()

	g := newTestGeocoder(srv.URL)
	lat, lng, err := g.Geocode(context.Background(), "Burnham Park")

	require.NoError(t, err)
	assert.Equal(t, "Burnham Park, Baguio City, Philippines", gotQuery)
	assert.Equal(t, 16.4119, lat)
	assert.Equal(t, 120.5933, lng)
}

func TestHTTPGeocoder_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	g := newTestGeocoder(srv.URL)
	_, _, err := g.Geocode(context.Background(), "Nowhere Special")

	assert.ErrorIs(t, err, types.ErrPlaceNotFound)
}

func TestHTTPGeocoder_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	g := newTestGeocoder(srv.URL)
	_, _, err := g.Geocode(context.Background(), "Burnham Park")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestHTTPGeocoder_CachesByName(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"geometry":{"lat":16.4,"lng":120.6}}]}`))
	}))
	defer srv.Close()

	g := newTestGeocoder(srv.URL)
	for i := 0; i < 3; i++ {
		lat, lng, err := g.Geocode(context.Background(), "Wright Park")
		require.NoError(t, err)
		assert.Equal(t, 16.4, lat)
		assert.Equal(t, 120.6, lng)
	}

	assert.Equal(t, int32(1), calls.Load())
}
