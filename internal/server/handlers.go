package server

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"

	"github.com/coldsnap/freezecalc/pkg/config"
	"github.com/coldsnap/freezecalc/pkg/estimator"
)

// Handlers contains all HTTP handlers for the calculator server
type Handlers struct {
	controller *Controller
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{controller: ctrl}
}

// EstimateResponse is the JSON body for a single estimate
type EstimateResponse struct {
	Temperature    float64 `json:"temperature"`
	Freezes        bool    `json:"freezes"`
	Days           float64 `json:"days"`
	Hours          float64 `json:"hours"`
	Interpretation string  `json:"interpretation"`
}

// CurvePoint is one sample of the plotted curve. Points at or above the
// no-freeze threshold report zero days, matching how the original chart
// plots the non-freezing region.
type CurvePoint struct {
	Temperature float64 `json:"temperature"`
	Days        float64 `json:"days"`
}

// AnchorsResponse carries the reference dataset and the display ranges
// the UI needs to configure its form and chart.
type AnchorsResponse struct {
	Anchors            []estimator.Anchor `json:"anchors"`
	InstantFreezeBelow float64            `json:"instant_freeze_below"`
	NoFreezeAbove      float64            `json:"no_freeze_above"`
	Display            config.DisplayData `json:"display"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// GetEstimate handles GET /api/estimate?temp=<float>
func (h *Handlers) GetEstimate(w http.ResponseWriter, req *http.Request) {
	raw := req.URL.Query().Get("temp")
	if raw == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "missing temp parameter"})
		return
	}

	temp, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "temp must be a number"})
		return
	}

	result, err := h.controller.estimator.Estimate(temp)
	if err != nil {
		// Only non-finite input can fail here
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, EstimateResponse{
		Temperature:    temp,
		Freezes:        result.Freezes,
		Days:           result.Days,
		Hours:          result.Hours(),
		Interpretation: estimator.Interpretation(result.Days),
	})
}

// GetCurve handles GET /api/curve, returning the sampled curve over the
// configured plotting range.
func (h *Handlers) GetCurve(w http.ResponseWriter, req *http.Request) {
	dc := h.controller.display
	sweep, err := h.controller.estimator.Sweep(dc.SweepMin, dc.SweepMax, dc.SweepPoints)
	if err != nil {
		h.controller.logger.Errorf("curve sweep failed: %v", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not compute curve"})
		return
	}

	points := make([]CurvePoint, len(sweep))
	for i, p := range sweep {
		days := 0.0
		if p.Result.Freezes {
			days = p.Result.Days
		}
		points[i] = CurvePoint{Temperature: p.Temperature, Days: days}
	}

	respondJSON(w, http.StatusOK, points)
}

// GetAnchors handles GET /api/anchors
func (h *Handlers) GetAnchors(w http.ResponseWriter, req *http.Request) {
	lower, upper := h.controller.estimator.Bounds()
	respondJSON(w, http.StatusOK, AnchorsResponse{
		Anchors:            h.controller.estimator.Anchors(),
		InstantFreezeBelow: lower,
		NoFreezeAbove:      upper,
		Display:            h.controller.display,
	})
}

// ServeIndexTemplate renders the calculator page with the configured
// input range baked into the form.
func (h *Handlers) ServeIndexTemplate(w http.ResponseWriter, req *http.Request) {
	tmpl, err := template.ParseFS(*h.controller.FS, "index.html")
	if err != nil {
		h.controller.logger.Errorf("could not parse index template: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	if err := tmpl.Execute(w, h.controller.display); err != nil {
		h.controller.logger.Errorf("could not render index template: %v", err)
	}
}

// ServeJS serves the calculator's client-side script
func (h *Handlers) ServeJS(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	http.ServeFileFS(w, req, *h.controller.FS, "js/freezecalc.js")
}
