package mqtt

import "heater_relay/internal/models"

// outbound is one queued publish: either a journal event or a snapshot.
type outbound struct {
	event *models.HeaterEvent
	state *models.HeaterState
}

// ringBuffer is a fixed-capacity FIFO of pending publishes. When full, the
// oldest entry is overwritten. Not safe for concurrent use.
type ringBuffer struct {
	buf     []outbound
	head    int // next write position
	count   int
	dropped int // overwritten since the last drain
}

func newRingBuffer(capacity int) *ringBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &ringBuffer{buf: make([]outbound, capacity)}
}

// push appends msg and reports whether an older entry had to be dropped.
func (r *ringBuffer) push(msg outbound) bool {
	r.buf[r.head] = msg
	r.head = (r.head + 1) % len(r.buf)
	if r.count == len(r.buf) {
		r.dropped++
		return true
	}
	r.count++
	return false
}

// drainAll returns the pending entries oldest first and empties the buffer.
func (r *ringBuffer) drainAll() ([]outbound, int) {
	if r.count == 0 {
		return nil, 0
	}
	out := make([]outbound, r.count)
	start := (r.head - r.count + len(r.buf)) % len(r.buf)
	for i := range out {
		out[i] = r.buf[(start+i)%len(r.buf)]
	}
	dropped := r.dropped
	r.head, r.count, r.dropped = 0, 0, 0
	return out, dropped
}

func (r *ringBuffer) len() int { return r.count }
