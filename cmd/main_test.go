package main

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"heater_relay/internal/models"
	"heater_relay/internal/mqtt"
	"heater_relay/internal/relay"
	"heater_relay/internal/sensor"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	v := viper.New()
	found, err := loadConfig(v, t.TempDir())
	require.NoError(t, err)
	assert.False(t, found)

	cfg, err := readSettings(v)
	require.NoError(t, err)
	assert.Equal(t, "80", cfg.ControlPort)
	assert.Equal(t, 10*time.Millisecond, cfg.AcceptPoll)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 26.0, cfg.ThresholdC)
	assert.Equal(t, models.ModeManualOff, cfg.InitialMode)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, driverSimulated, cfg.SensorDriver)
	assert.Equal(t, driverMemory, cfg.RelayDriver)
	assert.Equal(t, relay.DefaultRelayLine, cfg.RelayLine)
	assert.Empty(t, cfg.MQTTBroker)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yml := []byte(`
control:
  port: "8081"
  read_timeout: 0
heater:
  threshold_c: 21.5
  initial_mode: auto
  poll_interval: 2s
sensor:
  fault_every: 4
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), yml, 0o600))
	t.Setenv("HEATER_MIRROR_PORT", "9090")

	v := viper.New()
	found, err := loadConfig(v, dir)
	require.NoError(t, err)
	require.True(t, found)

	cfg, err := readSettings(v)
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.ControlPort)
	assert.Zero(t, cfg.ReadTimeout, "0 keeps the unbounded wait")
	assert.Equal(t, 21.5, cfg.ThresholdC)
	assert.Equal(t, models.ModeAuto, cfg.InitialMode)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, 4, cfg.Sim.FaultEvery)
	assert.Equal(t, "9090", cfg.MirrorPort)
}

func TestLoadConfig_BrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("control: [\n"), 0o600))

	_, err := loadConfig(viper.New(), dir)
	assert.Error(t, err)
}

func TestReadSettings_RejectsUnknownMode(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("heater.initial_mode", "HEAT")

	_, err := readSettings(v)
	assert.ErrorIs(t, err, errUnknownMode)
}

func TestReadSettings_PollIntervalBounds(t *testing.T) {
	cases := map[string]struct {
		value string
		ok    bool
	}{
		"firmware default": {"5s", true},
		"shortest":         {"1ms", true},
		"longest":          {maxPollInterval.String(), true},
		"zero":             {"0s", false},
		"negative":         {"-5s", false},
		"sub millisecond":  {"500us", false},
		"past clock wrap":  {"1200h", false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			setDefaults(v)
			v.Set("heater.poll_interval", tc.value)

			cfg, err := readSettings(v)
			if !tc.ok {
				assert.ErrorIs(t, err, errPollInterval)
				return
			}
			require.NoError(t, err)
			assert.Positive(t, cfg.PollInterval)
		})
	}
}

func TestOpenRelayAndSensor(t *testing.T) {
	out, err := openRelay(settings{RelayDriver: driverMemory})
	require.NoError(t, err)
	assert.IsType(t, &relay.Memory{}, out)

	_, err = openRelay(settings{RelayDriver: "pwm"})
	assert.Error(t, err)

	src, err := openSensor(settings{SensorDriver: driverSimulated}, nil)
	require.NoError(t, err)
	assert.IsType(t, &sensor.Simulated{}, src)

	_, err = openSensor(settings{SensorDriver: "dht22"}, nil)
	assert.Error(t, err)
}

func TestOpenPublisher_NoBroker(t *testing.T) {
	pub := openPublisher(settings{}, nil)
	assert.Equal(t, mqtt.Noop{}, pub)
}

func TestControlURL(t *testing.T) {
	addr := &net.TCPAddr{IP: net.ParseIP("192.168.1.20"), Port: 80}
	assert.Equal(t, "http://192.168.1.20:80/", controlURL(addr))

	wildcard := &net.TCPAddr{IP: net.IPv4zero, Port: 8081}
	assert.Contains(t, controlURL(wildcard), ":8081/")
}
