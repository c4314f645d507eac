package protocol

import (
	"bufio"
	"fmt"
	"io"
)

// Status is the data shown on the status page. Mode is deliberately absent:
// clients only ever see the relay state.
type Status struct {
	HeaterOn     bool
	TemperatureC float64
	Humidity     float64
	Counter      uint64
}

const crlf = "\r\n"

// HeaterLabel renders the relay state the way the status page shows it.
func HeaterLabel(on bool) string {
	if on {
		return "On"
	}
	return "Off"
}

// WriteStatus writes the full response: status line, content type, blank
// separator and the HTML body. Field order is fixed.
func WriteStatus(w io.Writer, st Status) error {
	bw := bufio.NewWriter(w)
	lines := []string{
		"HTTP/1.1 200 OK",
		"Content-Type: text/html",
		"",
		"<!DOCTYPE HTML>",
		"<html>",
		"Heater is now " + HeaterLabel(st.HeaterOn) + "<br>",
		"<br><br>",
		`Click <a href="` + PathOn + `">here to turn heater ON</a><br>`,
		`Click <a href="` + PathOff + `">here to turn heater OFF</a><br>`,
		`Click <a href="` + PathAuto + `">here to set to AUTO mode</a><br>`,
		"============<br> Temperature Control <br>============",
		"<br><br>",
		"Temperature in Celsius : ",
		fmt.Sprintf("%.2f", st.TemperatureC),
		"<br>",
		fmt.Sprintf("Relative Humidity : %.2f", st.Humidity),
		"<br>END",
		fmt.Sprintf("%d", st.Counter),
		"</html>",
	}
	for _, l := range lines {
		if _, err := bw.WriteString(l + crlf); err != nil {
			return fmt.Errorf("write status line: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush status: %w", err)
	}
	return nil
}
