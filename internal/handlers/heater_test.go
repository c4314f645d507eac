package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"heater_relay/internal/models"
	"heater_relay/internal/service"
)

type healthBody struct {
	Status   string   `json:"status"`
	Mode     string   `json:"mode"`
	Heater   string   `json:"heater"`
	Problems []string `json:"problems"`
}

func TestHealth(t *testing.T) {
	cases := []struct {
		name       string
		state      models.HeaterState
		wantStatus string
		wantIssue  string
	}{
		{
			name:       "manual off at boot",
			state:      models.HeaterState{ID: 1, Mode: models.ModeManualOff},
			wantStatus: statusOK,
		},
		{
			name: "auto with reading",
			state: models.HeaterState{ID: 1, Mode: models.ModeAuto, HeaterOn: true,
				Reading: models.SensorReading{TemperatureC: 22, Valid: true}, ThresholdC: 26},
			wantStatus: statusOK,
		},
		{
			name:       "auto without reading",
			state:      models.HeaterState{ID: 1, Mode: models.ModeAuto},
			wantStatus: statusDegraded,
			wantIssue:  problemNoData,
		},
		{
			name:       "relay output failing",
			state:      models.HeaterState{ID: 1, Mode: models.ModeManualOn, HeaterOn: true, ActuatorFault: "line busy"},
			wantStatus: statusDegraded,
			wantIssue:  problemActuator,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Monitoring: &mockMonitoring{state: tc.state}})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			if w.Code != http.StatusOK {
				t.Fatalf("health status=%d", w.Code)
			}
			var body healthBody
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if body.Status != tc.wantStatus || body.Mode != string(tc.state.Mode) {
				t.Fatalf("unexpected body: %s", w.Body.String())
			}
			if tc.wantIssue == "" && len(body.Problems) != 0 {
				t.Fatalf("expected no problems, got %v", body.Problems)
			}
			if tc.wantIssue != "" && (len(body.Problems) != 1 || !strings.HasPrefix(body.Problems[0], tc.wantIssue)) {
				t.Fatalf("expected problem %q, got %v", tc.wantIssue, body.Problems)
			}
		})
	}
}

func TestHealth_StateUnavailable(t *testing.T) {
	r := newTestRouter(&service.Service{Monitoring: &mockMonitoring{err: errors.New("db locked")}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestHeaterHandlers_GetState(t *testing.T) {
	mon := &mockMonitoring{state: models.HeaterState{
		ID:         1,
		Mode:       models.ModeAuto,
		HeaterOn:   true,
		Reading:    models.SensorReading{TemperatureC: 24, Humidity: 41, Valid: true},
		ThresholdC: 26,
		PollCount:  7,
	}}
	r := newTestRouter(&service.Service{Monitoring: mon})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/heater/state", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("state status=%d, body=%s", w.Code, w.Body.String())
	}
	var got struct {
		models.HeaterState
		Heater         string `json:"heater"`
		BelowThreshold *bool  `json:"below_threshold"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if got.Mode != models.ModeAuto || !got.HeaterOn || got.Reading.TemperatureC != 24 || got.PollCount != 7 {
		t.Fatalf("unexpected state: %+v", got.HeaterState)
	}
	if got.Heater != "ON" || got.BelowThreshold == nil || !*got.BelowThreshold {
		t.Fatalf("derived fields wrong: heater=%q below=%v", got.Heater, got.BelowThreshold)
	}
}

func TestHeaterHandlers_NoReadingHasNoVerdict(t *testing.T) {
	r := newTestRouter(&service.Service{Monitoring: &mockMonitoring{state: models.HeaterState{ID: 1, Mode: models.ModeManualOff, ThresholdC: 26}}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/heater/state", nil))
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := body["below_threshold"]; !ok || v != nil {
		t.Fatalf("below_threshold should be null, got %v", v)
	}
	if body["heater"] != "OFF" {
		t.Fatalf("heater=%v", body["heater"])
	}
}

func TestHeaterHandlers_GetStateError(t *testing.T) {
	mon := &mockMonitoring{err: errors.New("db down")}
	r := newTestRouter(&service.Service{Monitoring: mon})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/heater/state", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != errGetState {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestHeaterHandlers_NoWriteRoutes(t *testing.T) {
	r := newTestRouter(&service.Service{Monitoring: &mockMonitoring{}})

	for _, path := range []string{"/api/v1/heater/state", "/api/v1/heater/mode"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
		if w.Code == http.StatusOK {
			t.Fatalf("POST %s should not be served", path)
		}
	}
}
