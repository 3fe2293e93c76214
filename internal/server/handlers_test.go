package server

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/coldsnap/freezecalc/pkg/config"
	"github.com/coldsnap/freezecalc/pkg/estimator"
	"go.uber.org/zap"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()

	est, err := estimator.New(estimator.DefaultDataset())
	if err != nil {
		t.Fatalf("building estimator: %v", err)
	}

	var wg sync.WaitGroup
	ctrl, err := NewController(context.Background(), &wg, est,
		config.HTTPData{ListenAddr: "127.0.0.1", Port: 8080},
		config.DefaultDisplay(), zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewController() failed: %v", err)
	}
	return ctrl
}

func doRequest(t *testing.T, ctrl *Controller, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	ctrl.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestGetEstimate(t *testing.T) {
	ctrl := newTestController(t)

	tests := []struct {
		name           string
		temp           string
		freezes        bool
		days           float64
		epsilon        float64
		interpretation string
	}{
		{"interpolated", "10", true, 10.4547, 1e-3, "extended"},
		{"anchor", "-4", true, 2, 1e-9, "moderate"},
		{"instant", "-20", true, 0, 0, "instant"},
		{"no freeze", "40", false, 0, 0, "instant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, ctrl, "/api/estimate?temp="+tt.temp)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, expected 200; body: %s", rec.Code, rec.Body.String())
			}

			var resp EstimateResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("could not decode response: %v", err)
			}
			if resp.Freezes != tt.freezes {
				t.Errorf("freezes = %v, expected %v", resp.Freezes, tt.freezes)
			}
			if math.Abs(resp.Days-tt.days) > tt.epsilon {
				t.Errorf("days = %g, expected %g", resp.Days, tt.days)
			}
			if math.Abs(resp.Hours-resp.Days*24) > 1e-9 {
				t.Errorf("hours = %g, expected %g", resp.Hours, resp.Days*24)
			}
			if resp.Freezes && resp.Interpretation != tt.interpretation {
				t.Errorf("interpretation = %q, expected %q", resp.Interpretation, tt.interpretation)
			}
		})
	}
}

func TestGetEstimateBadInput(t *testing.T) {
	ctrl := newTestController(t)

	for _, path := range []string{
		"/api/estimate",
		"/api/estimate?temp=",
		"/api/estimate?temp=cold",
		"/api/estimate?temp=NaN",
		"/api/estimate?temp=Inf",
	} {
		rec := doRequest(t, ctrl, path)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, expected 400", path, rec.Code)
		}
	}
}

func TestGetCurve(t *testing.T) {
	ctrl := newTestController(t)

	rec := doRequest(t, ctrl, "/api/curve")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}

	var points []CurvePoint
	if err := json.Unmarshal(rec.Body.Bytes(), &points); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if len(points) != 100 {
		t.Fatalf("got %d points, expected 100", len(points))
	}
	if points[0].Temperature != -20 {
		t.Errorf("first point at %g, expected -20", points[0].Temperature)
	}

	// Past the freezing threshold the plotted curve sits at zero.
	last := points[len(points)-1]
	if last.Days != 0 {
		t.Errorf("point at %g has %g days, expected 0 above the freezing threshold",
			last.Temperature, last.Days)
	}
	for _, p := range points {
		if p.Days < 0 {
			t.Errorf("point at %g has negative days %g", p.Temperature, p.Days)
		}
	}
}

func TestGetAnchors(t *testing.T) {
	ctrl := newTestController(t)

	rec := doRequest(t, ctrl, "/api/anchors")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}

	var resp AnchorsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if len(resp.Anchors) != 4 {
		t.Errorf("got %d anchors, expected 4", len(resp.Anchors))
	}
	if resp.InstantFreezeBelow != -15 || resp.NoFreezeAbove != 32 {
		t.Errorf("thresholds = (%g, %g), expected (-15, 32)",
			resp.InstantFreezeBelow, resp.NoFreezeAbove)
	}
	if resp.Display.SweepPoints != 100 {
		t.Errorf("display sweep_points = %d, expected 100", resp.Display.SweepPoints)
	}
}

func TestServeIndexTemplate(t *testing.T) {
	ctrl := newTestController(t)

	rec := doRequest(t, ctrl, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Bedbug Freezing Time Calculator") {
		t.Error("index page missing title")
	}
	if !strings.Contains(body, `min="-30"`) || !strings.Contains(body, `max="35"`) {
		t.Error("index page missing configured input range")
	}
}

func TestRequestIDHeader(t *testing.T) {
	ctrl := newTestController(t)

	rec := doRequest(t, ctrl, "/api/anchors")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response missing X-Request-ID header")
	}
}
