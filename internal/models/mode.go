package models

// Mode is the control policy currently governing the heater relay.
type Mode string

const (
	ModeManualOn  Mode = "MANUAL_ON"
	ModeManualOff Mode = "MANUAL_OFF"
	ModeAuto      Mode = "AUTO"
)

// ParseMode maps a configuration value to a Mode. Unknown values report false.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeManualOn, ModeManualOff, ModeAuto:
		return Mode(s), true
	}
	return "", false
}

// Command is a control request decoded from client text.
type Command int

const (
	CommandUnknown Command = iota
	CommandOn
	CommandOff
	CommandAuto
)

func (c Command) String() string {
	switch c {
	case CommandOn:
		return "ON"
	case CommandOff:
		return "OFF"
	case CommandAuto:
		return "AUTO"
	default:
		return "UNKNOWN"
	}
}

// CommandFor returns the command that puts the unit into mode m.
func CommandFor(m Mode) Command {
	switch m {
	case ModeManualOn:
		return CommandOn
	case ModeManualOff:
		return CommandOff
	case ModeAuto:
		return CommandAuto
	}
	return CommandUnknown
}
