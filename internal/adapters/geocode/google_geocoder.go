package geocode

import (
	"bus-planning-service/internal/domain"
	"bus-planning-service/internal/platform/obs"
	"bus-planning-service/internal/ports"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

	// The console serves one city. Bare stop names ("MP Nagar") are
	// biased toward it both by suffix and by viewport so the upstream
	// service does not wander off to a same-named place elsewhere.
	cityBiasSuffix = ", Bhopal, Madhya Pradesh, India"
	cityBounds     = "23.1,77.2|23.4,77.6"
	biasRegion     = "in"
)

type googleResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// GoogleGeocoder resolves operator-typed stop names through the Google
// Geocoding API, consulting the shared cache first. A failed lookup is
// an unresolved address, not an error: the batch pipeline plans around
// it. Only context cancellation surfaces as an error.
type GoogleGeocoder struct {
	session *http.Client
	apiKey  string
	baseURL string
	cache   ports.GeocodeCache
	limiter *rate.Limiter
}

func NewGoogleGeocoder(apiKey string, cache ports.GeocodeCache) *GoogleGeocoder {
	return &GoogleGeocoder{
		session: &http.Client{Timeout: 15 * time.Second},
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		cache:   cache,
		limiter: rate.NewLimiter(rate.Limit(10), 10),
	}
}

// WithBaseURL overrides the upstream endpoint, for tests.
func (g *GoogleGeocoder) WithBaseURL(u string) *GoogleGeocoder {
	g.baseURL = strings.TrimRight(u, "/")
	return g
}

func (g *GoogleGeocoder) normalize(address string) string {
	return strings.Join(strings.Fields(address), " ")
}

// Resolve maps one address to coordinates. ok=false means the address
// could not be resolved (empty input, no results, or the upstream
// refusing after retries); err is reserved for cancellation.
func (g *GoogleGeocoder) Resolve(ctx context.Context, address string) (_ domain.Coordinates, ok bool, err error) {
	defer obs.Time(ctx, "geocode.Resolve")(&err)

	norm := g.normalize(address)
	if norm == "" {
		obs.GeocodeLookups.WithLabelValues("empty").Inc()
		return domain.Coordinates{}, false, nil
	}

	if g.cache != nil {
		cached, cerr := g.cache.GetMany(ctx, []string{norm})
		if cerr != nil {
			log.Printf("geocode cache read failed address=%q err=%v", norm, cerr)
		} else if c, hit := cached[norm]; hit {
			obs.GeocodeLookups.WithLabelValues("cache_hit").Inc()
			return c, true, nil
		}
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return domain.Coordinates{}, false, err
	}

	biased := norm
	if !strings.Contains(strings.ToLower(norm), "bhopal") {
		biased = norm + cityBiasSuffix
	}

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.newRequest(ctx, g.baseURL)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("address", biased)
		q.Set("region", biasRegion)
		q.Set("bounds", cityBounds)
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return domain.Coordinates{}, false, ctx.Err()
		}
		log.Printf("geocode request failed address=%q err=%v", norm, err)
		obs.GeocodeLookups.WithLabelValues("transport_error").Inc()
		return domain.Coordinates{}, false, nil
	}
	defer resp.Body.Close()

	var decoded googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		log.Printf("geocode decode failed address=%q err=%v", norm, err)
		obs.GeocodeLookups.WithLabelValues("bad_response").Inc()
		return domain.Coordinates{}, false, nil
	}

	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		log.Printf("geocode unresolved address=%q status=%s", norm, decoded.Status)
		obs.GeocodeLookups.WithLabelValues("unresolved").Inc()
		return domain.Coordinates{}, false, nil
	}

	loc := decoded.Results[0].Geometry.Location
	coords := domain.Coordinates{Lat: loc.Lat, Lng: loc.Lng}

	if g.cache != nil {
		if cerr := g.cache.PutMany(ctx, map[string]domain.Coordinates{norm: coords}); cerr != nil {
			log.Printf("geocode cache write failed address=%q err=%v", norm, cerr)
		}
	}

	obs.GeocodeLookups.WithLabelValues("resolved").Inc()
	return coords, true, nil
}

var _ ports.Geocoder = (*GoogleGeocoder)(nil)
