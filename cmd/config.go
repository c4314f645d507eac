package main

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"heater_relay/internal/logger"
	"heater_relay/internal/models"
	"heater_relay/internal/relay"
	"heater_relay/internal/sensor"

	"github.com/spf13/viper"
)

const (
	driverSimulated = "simulated"
	driverGPIO      = "gpio"
	driverMemory    = "memory"
)

// settings is the resolved configuration.
type settings struct {
	LogLevel string

	ControlPort string
	AcceptPoll  time.Duration
	ReadTimeout time.Duration

	ThresholdC   float64
	InitialMode  models.Mode
	PollInterval time.Duration

	SensorDriver string
	Sim          sensor.SimConfig

	RelayDriver   string
	Chip          string
	RelayLine     int
	IndicatorLine int

	DBPath     string
	MirrorPort string

	MQTTBroker   string
	MQTTClientID string
	MQTTPrefix   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", logger.InfoLevel)

	v.SetDefault("control.port", "80")
	v.SetDefault("control.accept_poll", "10ms")
	v.SetDefault("control.read_timeout", "10s")

	v.SetDefault("heater.threshold_c", 26.0)
	v.SetDefault("heater.initial_mode", string(models.ModeManualOff))
	v.SetDefault("heater.poll_interval", "5s")

	v.SetDefault("sensor.driver", driverSimulated)
	v.SetDefault("sensor.ambient_c", sensor.DefaultAmbientC)
	v.SetDefault("sensor.humidity", sensor.DefaultHumidity)
	v.SetDefault("sensor.heat_rate", sensor.DefaultHeatRatePerSec)
	v.SetDefault("sensor.cool_rate", sensor.DefaultCoolRatePerSec)
	v.SetDefault("sensor.fault_every", 0)

	v.SetDefault("relay.driver", driverMemory)
	v.SetDefault("relay.chip", relay.DefaultChip)
	v.SetDefault("relay.relay_line", relay.DefaultRelayLine)
	v.SetDefault("relay.indicator_line", relay.DefaultIndicatorLine)

	v.SetDefault("db.path", "heater.db")
	v.SetDefault("mirror.port", "8080")

	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.client_id", "heater-relay")
	v.SetDefault("mqtt.topic_prefix", "home/heater")
}

// loadConfig reads config.yml from dir on top of the defaults. HEATER_*
// environment variables override both (HEATER_CONTROL_PORT for
// control.port). A missing file is not an error.
func loadConfig(v *viper.Viper, dir string) (found bool, err error) {
	setDefaults(v)
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetEnvPrefix("HEATER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// maxPollInterval is the longest span the wrapping millisecond clock can
// measure.
const maxPollInterval = time.Duration(math.MaxUint32) * time.Millisecond

var (
	errUnknownMode  = errors.New("heater.initial_mode must be MANUAL_ON, MANUAL_OFF or AUTO")
	errPollInterval = fmt.Errorf("heater.poll_interval must be between 1ms and %s", maxPollInterval)
)

func readSettings(v *viper.Viper) (settings, error) {
	mode, ok := models.ParseMode(strings.ToUpper(strings.TrimSpace(v.GetString("heater.initial_mode"))))
	if !ok {
		return settings{}, errUnknownMode
	}
	interval := v.GetDuration("heater.poll_interval")
	if interval < time.Millisecond || interval > maxPollInterval {
		return settings{}, errPollInterval
	}
	return settings{
		LogLevel: v.GetString("log.level"),

		ControlPort: v.GetString("control.port"),
		AcceptPoll:  v.GetDuration("control.accept_poll"),
		ReadTimeout: v.GetDuration("control.read_timeout"),

		ThresholdC:   v.GetFloat64("heater.threshold_c"),
		InitialMode:  mode,
		PollInterval: interval,

		SensorDriver: strings.ToLower(v.GetString("sensor.driver")),
		Sim: sensor.SimConfig{
			AmbientC:       v.GetFloat64("sensor.ambient_c"),
			Humidity:       v.GetFloat64("sensor.humidity"),
			HeatRatePerSec: v.GetFloat64("sensor.heat_rate"),
			CoolRatePerSec: v.GetFloat64("sensor.cool_rate"),
			FaultEvery:     v.GetInt("sensor.fault_every"),
		},

		RelayDriver:   strings.ToLower(v.GetString("relay.driver")),
		Chip:          v.GetString("relay.chip"),
		RelayLine:     v.GetInt("relay.relay_line"),
		IndicatorLine: v.GetInt("relay.indicator_line"),

		DBPath:     v.GetString("db.path"),
		MirrorPort: v.GetString("mirror.port"),

		MQTTBroker:   v.GetString("mqtt.broker"),
		MQTTClientID: v.GetString("mqtt.client_id"),
		MQTTPrefix:   v.GetString("mqtt.topic_prefix"),
	}, nil
}
