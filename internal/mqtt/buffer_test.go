package mqtt

import (
	"testing"

	"heater_relay/internal/models"
)

func eventMsg(typ string) outbound {
	return outbound{event: &models.HeaterEvent{Type: typ}}
}

func eventTypes(msgs []outbound) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m.event != nil {
			out = append(out, m.event.Type)
		} else {
			out = append(out, "state")
		}
	}
	return out
}

func TestRingBufferEmptyDrain(t *testing.T) {
	rb := newRingBuffer(4)
	got, dropped := rb.drainAll()
	if got != nil || dropped != 0 {
		t.Fatalf("expected nothing from empty drain, got %d items, %d dropped", len(got), dropped)
	}
}

func TestRingBufferKeepsJournalOrder(t *testing.T) {
	rb := newRingBuffer(8)
	rb.push(eventMsg(models.EventHeaterOn))
	rb.push(outbound{state: &models.HeaterState{HeaterOn: true}})
	rb.push(eventMsg(models.EventModeChange))
	rb.push(eventMsg(models.EventHeaterOff))

	got, _ := rb.drainAll()
	want := []string{models.EventHeaterOn, "state", models.EventModeChange, models.EventHeaterOff}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i, typ := range eventTypes(got) {
		if typ != want[i] {
			t.Errorf("item %d: got %s, want %s", i, typ, want[i])
		}
	}
	if rb.len() != 0 {
		t.Errorf("buffer should be empty after drain, len=%d", rb.len())
	}
}

func TestRingBufferOverflowDropsOldest(t *testing.T) {
	rb := newRingBuffer(3)
	seq := []string{
		models.EventStart, models.EventHeaterOn, models.EventSensorFault,
		models.EventSensorFault, models.EventHeaterOff,
	}
	var drops int
	for _, typ := range seq {
		if rb.push(eventMsg(typ)) {
			drops++
		}
	}
	if drops != 2 {
		t.Fatalf("expected 2 drops, got %d", drops)
	}

	got, dropped := rb.drainAll()
	if dropped != 2 {
		t.Errorf("drain reported %d dropped, want 2", dropped)
	}
	want := seq[2:]
	for i, typ := range eventTypes(got) {
		if typ != want[i] {
			t.Errorf("item %d: got %s, want %s", i, typ, want[i])
		}
	}
}

func TestRingBufferReusableAfterDrain(t *testing.T) {
	rb := newRingBuffer(2)
	rb.push(eventMsg(models.EventStart))
	rb.push(eventMsg(models.EventHeaterOn))
	rb.push(eventMsg(models.EventHeaterOff))
	_, _ = rb.drainAll()

	rb.push(eventMsg(models.EventStop))
	got, dropped := rb.drainAll()
	if dropped != 0 || len(got) != 1 || got[0].event.Type != models.EventStop {
		t.Fatalf("unexpected second cycle: %v dropped=%d", eventTypes(got), dropped)
	}
}

func TestRingBufferMinimumCapacity(t *testing.T) {
	rb := newRingBuffer(0)
	rb.push(eventMsg(models.EventStart))
	if rb.len() != 1 {
		t.Fatalf("len=%d, want 1", rb.len())
	}
}
