package handlers

import (
	"context"
	"sync"

	"heater_relay/internal/models"
	"heater_relay/internal/service"

	"github.com/gin-gonic/gin"
)

type mockMonitoring struct {
	mu    sync.Mutex
	state models.HeaterState
	err   error
	calls int
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.HeaterState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.state, m.err
}

func (m *mockMonitoring) set(st models.HeaterState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = st
}

type mockEventLog struct {
	resp    []models.HeaterEvent
	summary models.JournalSummary
	err     error
	calls   int
	last    service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.HeaterEvent, error) {
	m.calls++
	m.last = f
	return m.resp, m.err
}

func (m *mockEventLog) Summarize(ctx context.Context, f service.LogFilter) (models.JournalSummary, error) {
	m.calls++
	m.last = f
	return m.summary, m.err
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
