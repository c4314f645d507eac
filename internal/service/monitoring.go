package service

import (
	"context"
	"time"

	"heater_relay/internal/models"
	"heater_relay/internal/repository"
)

type MonitoringService struct {
	stateRepo  repository.StateRepo
	thresholdC float64
}

func NewMonitoringService(stateRepo repository.StateRepo, thresholdC float64) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo, thresholdC: thresholdC}
}

// GetState returns the latest recorded snapshot. Before the loop records
// anything it returns a baseline: heater OFF, no valid reading.
func (s *MonitoringService) GetState(ctx context.Context) (models.HeaterState, error) {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.HeaterState{}, err
	}
	if state.ID == 0 {
		return s.baselineState(), nil
	}
	state.UpdatedAt = toUTC(state.UpdatedAt)
	return state, nil
}

func (s *MonitoringService) baselineState() models.HeaterState {
	return models.HeaterState{
		ID:         1, // single-row table
		Mode:       models.ModeManualOff,
		HeaterOn:   false,
		ThresholdC: s.thresholdC,
		PollCount:  firstPollCount,
		UpdatedAt:  time.Now().UTC(),
	}
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
