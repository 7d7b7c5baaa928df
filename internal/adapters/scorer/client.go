package scorer

import (
	"bus-planning-service/internal/domain"
	"bus-planning-service/internal/platform/obs"
	"bus-planning-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type wireRequest struct {
	Routes []wireRouteRequest `json:"routes"`
}

type wireRouteRequest struct {
	SourceLat float64 `json:"source_lat"`
	SourceLng float64 `json:"source_lng"`
	DestLat   float64 `json:"dest_lat"`
	DestLng   float64 `json:"dest_lng"`
	PeakHour  string  `json:"peak_hour"`
}

type wireResponse struct {
	Routes []wireRouteResult `json:"routes"`
}

type wireRouteResult struct {
	Source      wirePoint         `json:"source"`
	Destination wirePoint         `json:"destination"`
	PeakHour    string            `json:"peak_hour"`
	TotalRoutes int               `json:"total_routes"`
	Routes      []wireAlternative `json:"routes"`
}

type wirePoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type wireAlternative struct {
	RouteIndex   int         `json:"route_index"`
	DistanceKm   float64     `json:"distance_km"`
	DurationMin  float64     `json:"duration_min"`
	Waypoints    [][]float64 `json:"waypoints"`
	GeminiScore  float64     `json:"gemini_score"`
	TrafficScore float64     `json:"traffic_score"`
	Reasoning    string      `json:"reasoning"`
	Rank         int         `json:"rank"`
}

// Client calls the external AI route-ranking service. The whole batch
// goes up in a single request and the response array is positionally
// aligned with it; a length mismatch is rejected here so downstream
// code can trust the zip.
type Client struct {
	session *http.Client
	baseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{
		session: &http.Client{Timeout: 120 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) PlanBatch(ctx context.Context, reqs []ports.ScoreRequest) (_ []ports.ScoredRoutes, err error) {
	defer obs.Time(ctx, "scorer.PlanBatch")(&err)

	if len(reqs) == 0 {
		return nil, errors.New("score routes: empty request")
	}

	payload := wireRequest{Routes: make([]wireRouteRequest, 0, len(reqs))}
	for _, r := range reqs {
		payload.Routes = append(payload.Routes, wireRouteRequest{
			SourceLat: r.Source.Lat,
			SourceLng: r.Source.Lng,
			DestLat:   r.Destination.Lat,
			DestLng:   r.Destination.Lng,
			PeakHour:  string(r.PeakPeriod),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	endpoint := c.baseURL + "/admin/route/plan-batch"

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, endpoint, body)
	})
	if err != nil {
		var he *httpStatusError
		if errors.As(err, &he) {
			// Surface the upstream's own message so the operator sees
			// what the scoring service actually complained about.
			return nil, fmt.Errorf("score routes: upstream status %d: %s", he.Code, he.detail())
		}
		return nil, fmt.Errorf("score routes: %w", err)
	}
	defer resp.Body.Close()

	var decoded wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(decoded.Routes) != len(reqs) {
		return nil, fmt.Errorf("score routes: sent %d tuples, got %d results", len(reqs), len(decoded.Routes))
	}

	out := make([]ports.ScoredRoutes, 0, len(decoded.Routes))
	for i, wr := range decoded.Routes {
		alts := make([]domain.RouteAlternative, 0, len(wr.Routes))
		for _, wa := range wr.Routes {
			alt := domain.RouteAlternative{
				Index:        wa.RouteIndex,
				DistanceKm:   wa.DistanceKm,
				DurationMin:  wa.DurationMin,
				GeminiScore:  wa.GeminiScore,
				TrafficScore: wa.TrafficScore,
				Reasoning:    wa.Reasoning,
				Rank:         wa.Rank,
			}
			alt.Waypoints = make([]domain.Coordinates, 0, len(wa.Waypoints))
			for _, p := range wa.Waypoints {
				if len(p) != 2 {
					return nil, fmt.Errorf("result %d: invalid waypoint of %d values", i, len(p))
				}
				alt.Waypoints = append(alt.Waypoints, domain.Coordinates{Lat: p[0], Lng: p[1]})
			}
			alts = append(alts, alt)
		}

		if len(alts) == 0 {
			return nil, fmt.Errorf("result %d: no route alternatives", i)
		}

		out = append(out, ports.ScoredRoutes{
			Source:       domain.Coordinates{Lat: wr.Source.Lat, Lng: wr.Source.Lng},
			Destination:  domain.Coordinates{Lat: wr.Destination.Lat, Lng: wr.Destination.Lng},
			PeakPeriod:   domain.PeakPeriod(wr.PeakHour),
			Alternatives: alts,
		})
	}

	return out, nil
}

var _ ports.RouteScorer = (*Client)(nil)
