package service

import (
	"context"
	"io"
	"net"
	"time"

	"heater_relay/internal/models"
)

type fakeStateRepo struct {
	loadResp   models.HeaterState
	loadErr    error
	saveErr    error
	savedCalls []models.HeaterState
}

func (f *fakeStateRepo) Load(ctx context.Context) (models.HeaterState, error) {
	return f.loadResp, f.loadErr
}

func (f *fakeStateRepo) Save(ctx context.Context, s models.HeaterState) error {
	f.savedCalls = append(f.savedCalls, s)
	return f.saveErr
}

// fakeEventRepo satisfies repository.EventRepo. List serves events when
// set, otherwise what was appended, filtered like the SQLite repository.
type fakeEventRepo struct {
	gotCtx  context.Context
	gotFrom time.Time
	gotTo   time.Time
	gotType string

	events    []models.HeaterEvent
	err       error
	appendErr error

	appended []models.HeaterEvent
	calls    int
}

func (f *fakeEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.HeaterEvent, error) {
	f.calls++
	f.gotCtx = ctx
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	if f.err != nil {
		return nil, f.err
	}
	src := f.events
	if src == nil {
		src = f.appended
	}
	var out []models.HeaterEvent
	for _, e := range src {
		if !from.IsZero() && e.OccurredAt.Before(from) {
			continue
		}
		if !to.IsZero() && e.OccurredAt.After(to) {
			continue
		}
		if typ != "" && e.Type != typ {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.HeaterEvent) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, e)
	return nil
}

func (f *fakeEventRepo) types() []string {
	out := make([]string, 0, len(f.appended))
	for _, e := range f.appended {
		out = append(out, e.Type)
	}
	return out
}

type fakeClock struct {
	now Millis
}

func (c *fakeClock) Millis() Millis { return c.now }

type fakeCounter uint64

func (c fakeCounter) Counter() uint64 { return uint64(c) }

// fakeAcceptor hands out queued connections, then reports nobody waiting.
type fakeAcceptor struct {
	conns []net.Conn
	err   error
	calls int
}

func (a *fakeAcceptor) TryAccept() (net.Conn, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	if len(a.conns) == 0 {
		return nil, nil
	}
	c := a.conns[0]
	a.conns = a.conns[1:]
	return c, nil
}

// connect queues an in-memory client that sends request and then reads the
// reply until the server closes.
func (a *fakeAcceptor) connect(request string) <-chan string {
	server, client := net.Pipe()
	a.conns = append(a.conns, server)

	reply := make(chan string, 1)
	go func() {
		defer client.Close()
		if request != "" {
			_, _ = client.Write([]byte(request))
		}
		b, _ := io.ReadAll(client)
		reply <- string(b)
	}()
	return reply
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
