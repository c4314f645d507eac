package server

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"
)

// DefaultAcceptPoll is how long TryAccept waits for a client.
const DefaultAcceptPoll = 10 * time.Millisecond

// ControlListener is the TCP endpoint of the heater control protocol. It
// hands out waiting clients without holding up the control loop.
type ControlListener struct {
	ln   *net.TCPListener
	poll time.Duration
}

// ListenControl binds the control port. acceptPoll bounds each TryAccept.
func ListenControl(port string, acceptPoll time.Duration) (*ControlListener, error) {
	addr := normalizeAddr(port)
	if addr == "" {
		addr = ":80"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen control port %s: %w", addr, err)
	}
	if acceptPoll <= 0 {
		acceptPoll = DefaultAcceptPoll
	}
	return &ControlListener{ln: ln.(*net.TCPListener), poll: acceptPoll}, nil
}

// TryAccept returns the next waiting client, or (nil, nil) if none showed
// up within the accept poll window.
func (l *ControlListener) TryAccept() (net.Conn, error) {
	if err := l.ln.SetDeadline(time.Now().Add(l.poll)); err != nil {
		return nil, err
	}
	conn, err := l.ln.Accept()
	if err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) {
			return nil, nil
		}
		return nil, err
	}
	return conn, nil
}

// Addr is the bound address; useful with port "0".
func (l *ControlListener) Addr() net.Addr { return l.ln.Addr() }

func (l *ControlListener) Close() error { return l.ln.Close() }
