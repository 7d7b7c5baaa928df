package scorer

import (
	"bus-planning-service/internal/domain"
	"bus-planning-service/internal/ports"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func scoreRequests() []ports.ScoreRequest {
	return []ports.ScoreRequest{
		{
			Source:      domain.Coordinates{Lat: 23.23, Lng: 77.43},
			Destination: domain.Coordinates{Lat: 23.25, Lng: 77.40},
			PeakPeriod:  domain.PeakMorning,
		},
		{
			Source:      domain.Coordinates{Lat: 23.27, Lng: 77.33},
			Destination: domain.Coordinates{Lat: 23.22, Lng: 77.44},
			PeakPeriod:  domain.OffPeak,
		},
	}
}

func alternativePayload(n int) []map[string]any {
	out := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, map[string]any{
			"route_index":   i,
			"distance_km":   12.5 + float64(i),
			"duration_min":  45.0 + float64(5*i),
			"waypoints":     [][]float64{{23.23, 77.43}, {23.24, 77.42}},
			"gemini_score":  8.5 - float64(i),
			"traffic_score": 6.0,
			"reasoning":     "balanced arterial route",
			"rank":          i + 1,
		})
	}
	return out
}

func TestClientPlanBatch(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody wireRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}

		results := make([]map[string]any, 0, len(gotBody.Routes))
		for _, req := range gotBody.Routes {
			results = append(results, map[string]any{
				"source":       map[string]float64{"lat": req.SourceLat, "lng": req.SourceLng},
				"destination":  map[string]float64{"lat": req.DestLat, "lng": req.DestLng},
				"peak_hour":    req.PeakHour,
				"total_routes": 3,
				"routes":       alternativePayload(3),
			})
		}
		json.NewEncoder(w).Encode(map[string]any{"routes": results})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	out, err := client.PlanBatch(context.Background(), scoreRequests())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotPath != "/admin/route/plan-batch" {
		t.Errorf("path = %s, want /admin/route/plan-batch", gotPath)
	}
	if len(gotBody.Routes) != 2 {
		t.Fatalf("request tuples = %d, want 2", len(gotBody.Routes))
	}
	if gotBody.Routes[1].PeakHour != "off-peak" {
		t.Errorf("peak hour = %q, want off-peak", gotBody.Routes[1].PeakHour)
	}

	if len(out) != 2 {
		t.Fatalf("results = %d, want 2", len(out))
	}
	if len(out[0].Alternatives) != 3 {
		t.Fatalf("alternatives = %d, want 3", len(out[0].Alternatives))
	}

	alt := out[0].Alternatives[1]
	if alt.Index != 1 || alt.Rank != 2 {
		t.Errorf("alternative 1 index/rank = %d/%d, want 1/2", alt.Index, alt.Rank)
	}
	if len(alt.Waypoints) != 2 || alt.Waypoints[0].Lat != 23.23 {
		t.Errorf("waypoints decoded incorrectly: %+v", alt.Waypoints)
	}
	if out[1].PeakPeriod != domain.OffPeak {
		t.Errorf("peak period = %q, want off-peak", out[1].PeakPeriod)
	}
}

func TestClientToleratesFewerAlternatives(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req wireRequest
		json.NewDecoder(r.Body).Decode(&req)

		results := make([]map[string]any, 0, len(req.Routes))
		for range req.Routes {
			results = append(results, map[string]any{
				"source":       map[string]float64{"lat": 1, "lng": 2},
				"destination":  map[string]float64{"lat": 3, "lng": 4},
				"peak_hour":    "morning",
				"total_routes": 1,
				"routes":       alternativePayload(1),
			})
		}
		json.NewEncoder(w).Encode(map[string]any{"routes": results})
	}))
	defer srv.Close()

	out, err := NewClient(srv.URL).PlanBatch(context.Background(), scoreRequests()[:1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out[0].Alternatives) != 1 {
		t.Errorf("alternatives = %d, want 1", len(out[0].Alternatives))
	}
}

func TestClientRejectsMisalignedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"routes": []any{}})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).PlanBatch(context.Background(), scoreRequests())
	if err == nil || !strings.Contains(err.Error(), "sent 2 tuples, got 0") {
		t.Fatalf("error = %v, want alignment rejection", err)
	}
}

func TestClientSurfacesUpstreamDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Gemini quota exhausted"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).PlanBatch(context.Background(), scoreRequests())
	if err == nil || !strings.Contains(err.Error(), "Gemini quota exhausted") {
		t.Fatalf("error = %v, want the upstream detail message", err)
	}
}

func TestClientEmptyRequest(t *testing.T) {
	if _, err := NewClient("http://unused").PlanBatch(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty request")
	}
}
