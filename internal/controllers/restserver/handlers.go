package restserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/jrbassindale1/roomclimate/internal/constants"
	"github.com/jrbassindale1/roomclimate/pkg/config"
	"github.com/jrbassindale1/roomclimate/pkg/responseformat"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// GetScenario returns the current normalized scenario.
func (h *Handlers) GetScenario(w http.ResponseWriter, req *http.Request) {
	h.formatter.WriteResponse(w, req, h.controller.service.Scenario(), nil)
}

// SetScenario replaces the scenario from a JSON body. Unset fields take
// their defaults; the normalized result is returned.
func (h *Handlers) SetScenario(w http.ResponseWriter, req *http.Request) {
	sc := config.DefaultScenario()
	if err := json.NewDecoder(req.Body).Decode(&sc); err != nil {
		h.formatter.WriteError(w, req, http.StatusBadRequest, "invalid scenario: "+err.Error())
		return
	}
	h.controller.service.SetScenario(sc)
	h.formatter.WriteResponse(w, req, h.controller.service.Scenario(), nil)
}

// GetSnapshot evaluates the instantaneous heat balance. Query parameters:
// time (RFC 3339, default now) and indoor (degrees C, default the comfort
// floor).
func (h *Handlers) GetSnapshot(w http.ResponseWriter, req *http.Request) {
	at := time.Now()
	if v := req.URL.Query().Get("time"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.formatter.WriteError(w, req, http.StatusBadRequest, "invalid time: "+err.Error())
			return
		}
		at = parsed
	}

	indoor := h.controller.service.Scenario().Comfort.MinC
	if v := req.URL.Query().Get("indoor"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			h.formatter.WriteError(w, req, http.StatusBadRequest, "invalid indoor temperature: "+err.Error())
			return
		}
		indoor = parsed
	}

	h.formatter.WriteResponse(w, req, h.controller.service.Snapshot(at, indoor), nil)
}

// GetDay simulates a single day. The date comes from the path
// (/api/day/2023-07-01) or a date query parameter; it defaults to the
// summer solstice.
func (h *Handlers) GetDay(w http.ResponseWriter, req *http.Request) {
	raw := mux.Vars(req)["date"]
	if raw == "" {
		raw = req.URL.Query().Get("date")
	}

	date := time.Date(2023, 6, 21, 0, 0, 0, 0, time.UTC)
	if raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.formatter.WriteError(w, req, http.StatusBadRequest, "invalid date, want YYYY-MM-DD: "+err.Error())
			return
		}
		date = parsed
	}

	h.formatter.WriteResponse(w, req, h.controller.service.Day(date), nil)
}

// annualResponse is the /api/annual payload: everything except the raw
// point series, which is too large to return by default.
type annualResponse struct {
	RunID       string      `json:"runId"`
	WeatherMode string      `json:"weatherMode"`
	Metrics     interface{} `json:"metrics"`
	Summary     interface{} `json:"summary"`
	PointCount  int         `json:"pointCount"`
	StepMinutes int         `json:"stepMinutes"`
}

// GetAnnual runs (or returns the memoized) annual simulation. Pass
// points=true to include the full step series.
func (h *Handlers) GetAnnual(w http.ResponseWriter, req *http.Request) {
	run := h.controller.service.Annual()

	if req.URL.Query().Get("points") == "true" {
		h.formatter.WriteResponse(w, req, run, nil)
		return
	}

	h.formatter.WriteResponse(w, req, annualResponse{
		RunID:       run.RunID,
		WeatherMode: string(h.controller.service.WeatherMode()),
		Metrics:     run.Metrics,
		Summary:     run.Summary,
		PointCount:  len(run.Annual.Points),
		StepMinutes: run.Annual.StepMinutes,
	}, nil)
}

// GetSummary returns just the annual cost and carbon roll-up.
func (h *Handlers) GetSummary(w http.ResponseWriter, req *http.Request) {
	run := h.controller.service.Annual()
	h.formatter.WriteResponse(w, req, run.Summary, nil)
}

// GetHealth reports liveness and the build version.
func (h *Handlers) GetHealth(w http.ResponseWriter, req *http.Request) {
	h.formatter.WriteResponse(w, req, map[string]string{
		"status":  "ok",
		"version": constants.Version,
	}, nil)
}
