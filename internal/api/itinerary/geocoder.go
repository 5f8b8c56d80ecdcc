package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/peakbaguio/peak-baguio/config"
	"github.com/peakbaguio/peak-baguio/internal/types"
)

// Geocoder resolves a place name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, name string) (lat, lng float64, err error)
}

var _ Geocoder = (*HTTPGeocoder)(nil)

// HTTPGeocoder queries a forward-geocoding endpoint (OpenCage response
// shape: results[0].geometry.{lat,lng}). Every query is qualified with the
// configured city suffix. Calls are rate limited and results cached by name.
type HTTPGeocoder struct {
	httpClient    *http.Client
	baseURL       string
	apiKey        string
	cityQualifier string
	limiter       *rate.Limiter
	cache         *cache.Cache
}

type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"geometry"`
	} `json:"results"`
}

type coords struct {
	lat float64
	lng float64
}

func NewHTTPGeocoder(cfg config.GeocodingConfig) *HTTPGeocoder {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rps := cfg.RatePerSecond
	if rps <= 0 {
		rps = 1
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &HTTPGeocoder{
		httpClient:    &http.Client{Timeout: timeout},
		baseURL:       cfg.BaseURL,
		apiKey:        cfg.APIKey,
		cityQualifier: cfg.CityQualifier,
		limiter:       rate.NewLimiter(rate.Limit(rps), 1),
		cache:         cache.New(ttl, 2*ttl),
	}
}

func (g *HTTPGeocoder) Geocode(ctx context.Context, name string) (float64, float64, error) {
	if c, found := g.cache.Get(name); found {
		cc := c.(coords)
		return cc.lat, cc.lng, nil
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return 0, 0, fmt.Errorf("geocode rate limiter: %w", err)
	}

	query := url.Values{}
	query.Set("q", name+", "+g.cityQualifier)
	query.Set("key", g.apiKey)
	query.Set("limit", "1")

	reqURL := g.baseURL + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocode endpoint returned status %d", resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, 0, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	if len(body.Results) == 0 {
		return 0, 0, types.ErrPlaceNotFound
	}

	geom := body.Results[0].Geometry
	g.cache.Set(name, coords{lat: geom.Lat, lng: geom.Lng}, cache.DefaultExpiration)
	return geom.Lat, geom.Lng, nil
}
