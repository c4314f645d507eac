package mqtt

import (
	"sync"

	"heater_relay/internal/models"
)

// FakePublisher records published messages for test assertions. It is safe
// for use from the Async goroutine; read through Published when it is.
type FakePublisher struct {
	mu sync.Mutex

	Events        []models.HeaterEvent
	States        []models.HeaterState
	EventPayloads [][]byte
	StatePayloads [][]byte

	// PublishError, if set, is returned by both publish methods.
	PublishError error

	// Gate, if set, holds every publish until a value is received from it
	// or it is closed. It simulates a broker that does not answer.
	Gate chan struct{}

	Closed bool
}

// NewFakePublisher creates a FakePublisher.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (f *FakePublisher) PublishEvent(e models.HeaterEvent) error {
	if err := f.wait(); err != nil {
		return err
	}
	payload, err := FormatEvent(e)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Events = append(f.Events, e)
	f.EventPayloads = append(f.EventPayloads, payload)
	return nil
}

func (f *FakePublisher) PublishState(s models.HeaterState) error {
	if err := f.wait(); err != nil {
		return err
	}
	payload, err := FormatState(s)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.States = append(f.States, s)
	f.StatePayloads = append(f.StatePayloads, payload)
	return nil
}

// SetPublishError changes PublishError while publishes may be in flight.
func (f *FakePublisher) SetPublishError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PublishError = err
}

// Published returns copies of what has been recorded so far.
func (f *FakePublisher) Published() ([]models.HeaterEvent, []models.HeaterState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.HeaterEvent(nil), f.Events...), append([]models.HeaterState(nil), f.States...)
}

func (f *FakePublisher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// IsClosed reports whether Close was called.
func (f *FakePublisher) IsClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Closed
}

func (f *FakePublisher) wait() error {
	if f.Gate != nil {
		<-f.Gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.PublishError
}

// Noop discards everything. Used when no broker is configured.
type Noop struct{}

func (Noop) PublishEvent(models.HeaterEvent) error { return nil }
func (Noop) PublishState(models.HeaterState) error { return nil }
func (Noop) Close() error                          { return nil }
