package relay

import "sync"

// Memory is an in-process relay. It records every drive so tests can
// assert on the exact sequence of outputs.
type Memory struct {
	mu sync.Mutex

	relayLevel     int
	indicatorLevel int
	drives         []bool

	// DriveError, if set, is returned by Drive; the levels are left as they were.
	DriveError error
}

// NewMemory returns a relay in the OFF position.
func NewMemory() *Memory {
	rl, il := Levels(false)
	return &Memory{relayLevel: rl, indicatorLevel: il}
}

// Drive records the request and updates both levels.
func (m *Memory) Drive(on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.drives = append(m.drives, on)
	if m.DriveError != nil {
		return m.DriveError
	}
	m.relayLevel, m.indicatorLevel = Levels(on)
	return nil
}

// On reports whether the relay output is energised.
func (m *Memory) On() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.relayLevel == 1
}

// IndicatorLevel returns the raw indicator line level.
func (m *Memory) IndicatorLevel() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.indicatorLevel
}

// Drives returns a copy of every requested state, oldest first.
func (m *Memory) Drives() []bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]bool(nil), m.drives...)
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
