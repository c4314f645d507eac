// Package protocol implements the text control protocol spoken on the
// control port: a request line carrying an optional heater command, and a
// minimal HTTP/1.1 status page in reply.
package protocol

import (
	"strings"

	"heater_relay/internal/models"
)

// Command paths recognised anywhere in the request line.
const (
	PathOn   = "/Heater=ON"
	PathAuto = "/Heater=AUTO"
	PathOff  = "/Heater=OFF"
)

// ParseCommand matches the line against the command paths in a fixed order
// (ON, AUTO, OFF). The first match wins; anything else is CommandUnknown.
func ParseCommand(line string) models.Command {
	switch {
	case strings.Contains(line, PathOn):
		return models.CommandOn
	case strings.Contains(line, PathAuto):
		return models.CommandAuto
	case strings.Contains(line, PathOff):
		return models.CommandOff
	default:
		return models.CommandUnknown
	}
}
