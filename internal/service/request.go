package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"heater_relay/internal/logger"
	"heater_relay/internal/models"
	"heater_relay/internal/protocol"
)

const (
	// maxRequestLine caps how much of the first line is kept.
	maxRequestLine = 2048
	// drainWindow bounds how long pending client input is discarded before
	// replying, so a close does not reset the connection under the reply.
	drainWindow = 20 * time.Millisecond
)

// Exchange describes one serviced connection.
type Exchange struct {
	Served   bool
	Line     string
	Command  models.Command
	TimedOut bool
}

// RequestHandler services at most one control client per call.
type RequestHandler struct {
	unit        *ControlUnit
	polls       PollCounter
	acceptor    Acceptor
	readTimeout time.Duration
	log         *logger.Logger
}

// NewRequestHandler builds a handler. readTimeout 0 waits for the client's
// first line without any bound, which stalls polling while a silent client
// stays connected; a positive value bounds that wait.
func NewRequestHandler(unit *ControlUnit, polls PollCounter, acceptor Acceptor, readTimeout time.Duration, log *logger.Logger) *RequestHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &RequestHandler{
		unit:        unit,
		polls:       polls,
		acceptor:    acceptor,
		readTimeout: readTimeout,
		log:         log,
	}
}

// PollConnections returns immediately when no client is waiting. Otherwise
// it blocks until the client's request line arrives, applies the command it
// carries, replies with the status page and closes the connection.
func (h *RequestHandler) PollConnections(ctx context.Context) (Exchange, error) {
	conn, err := h.acceptor.TryAccept()
	if err != nil {
		return Exchange{}, fmt.Errorf("accept control client: %w", err)
	}
	if conn == nil {
		return Exchange{}, nil
	}
	defer func() { _ = conn.Close() }()

	// Cancellation only exists for shutdown: it expires the pending read.
	stop := context.AfterFunc(ctx, func() { _ = conn.SetReadDeadline(time.Now()) })
	defer stop()

	remote := conn.RemoteAddr().String()
	h.log.Debugw("control_client_connected", "remote", remote)

	ex := Exchange{Served: true}
	r := bufio.NewReader(conn)

	if h.readTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(h.readTimeout))
	}
	line, err := readRequestLine(r)
	switch {
	case err == nil:
	case isTimeout(err) && ctx.Err() == nil:
		ex.TimedOut = true
		h.log.Warnw("control_client_silent", "remote", remote, "timeout", h.readTimeout)
	case isTimeout(err):
		return ex, ctx.Err()
	default:
		h.log.Infow("control_read_failed", "remote", remote, "err", err)
	}
	ex.Line = line

	ex.Command = protocol.ParseCommand(line)
	h.unit.SetMode(ex.Command)
	h.log.Infow("control_request", "remote", remote, "line", line, "command", ex.Command.String())

	discardPending(conn, r)

	if h.readTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(h.readTimeout))
	}
	if err := protocol.WriteStatus(conn, h.status()); err != nil {
		return ex, fmt.Errorf("reply to %s: %w", remote, err)
	}
	h.log.Debugw("control_client_disconnected", "remote", remote)
	return ex, nil
}

func (h *RequestHandler) status() protocol.Status {
	st := h.unit.QueryState()
	return protocol.Status{
		HeaterOn:     st.HeaterOn,
		TemperatureC: st.Reading.TemperatureC,
		Humidity:     st.Reading.Humidity,
		Counter:      h.polls.Counter(),
	}
}

// readRequestLine reads up to the first CR or LF. A line cut short by EOF
// or the size cap is still returned.
func readRequestLine(r *bufio.Reader) (string, error) {
	buf := make([]byte, 0, 128)
	for len(buf) < maxRequestLine {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				return string(buf), nil
			}
			return string(buf), err
		}
		if b == '\r' || b == '\n' {
			return string(buf), nil
		}
		buf = append(buf, b)
	}
	return string(buf), nil
}

// discardPending drops whatever else the client already sent.
func discardPending(conn net.Conn, r *bufio.Reader) {
	_ = conn.SetReadDeadline(time.Now().Add(drainWindow))
	_, _ = io.Copy(io.Discard, r)
	_ = conn.SetReadDeadline(time.Time{})
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
