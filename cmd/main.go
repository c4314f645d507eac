package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "heater_relay/docs"
	"heater_relay/internal/handlers"
	"heater_relay/internal/logger"
	"heater_relay/internal/mqtt"
	"heater_relay/internal/relay"
	"heater_relay/internal/repository"
	"heater_relay/internal/repository/db"
	"heater_relay/internal/sensor"
	"heater_relay/internal/server"
	"heater_relay/internal/service"

	"github.com/jessevdk/go-flags"
	"github.com/spf13/viper"
)

// @title        Heater Relay Status API
// @version      1.0
// @description  Read-only mirror of the heater relay journal. Control happens on the control port.
// @BasePath     /

type options struct {
	ConfigDir string `short:"c" long:"config-dir" description:"Directory containing config.yml" default:"configs"`
	LogLevel  string `short:"l" long:"log-level" description:"Override log.level (debug, info, warn, error)"`
}

const shutdownTimeout = 10 * time.Second

type actuator interface {
	service.Actuator
	Close() error
}

type publisher interface {
	service.Publisher
	Close() error
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var fe *flags.Error
		if errors.As(err, &fe) && fe.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	// load config.yml
	v := viper.New()
	found, cfgErr := loadConfig(v, opts.ConfigDir)

	level := v.GetString("log.level")
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	log := logger.Get(level)

	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}
	if !found {
		log.Warnw("config.yml not found; using defaults", "dir", opts.ConfigDir)
	}
	cfg, err := readSettings(v)
	if err != nil {
		log.Fatalw("invalid config", "err", err)
	}

	// open DB
	conn, err := openDB(cfg.DBPath, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	out, err := openRelay(cfg)
	if err != nil {
		log.Fatalw("failed to init relay", "err", err, "driver", cfg.RelayDriver)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			log.Errorw("failed to release relay", "err", cerr)
		}
	}()

	unit := service.NewControlUnit(out, cfg.ThresholdC, cfg.InitialMode)

	src, err := openSensor(cfg, unit.HeaterOn)
	if err != nil {
		log.Fatalw("failed to init sensor", "err", err, "driver", cfg.SensorDriver)
	}
	scheduler := service.NewPollScheduler(unit, src, cfg.PollInterval)

	pub := openPublisher(cfg, log)
	defer func() { _ = pub.Close() }()

	listener, err := server.ListenControl(cfg.ControlPort, cfg.AcceptPoll)
	if err != nil {
		log.Fatalw("failed to open control port", "err", err)
	}
	defer func() { _ = listener.Close() }()

	// wire dependencies
	repos := repository.NewRepository(conn)
	handler := service.NewRequestHandler(unit, scheduler, listener, cfg.ReadTimeout, log)
	journal := service.NewJournal(repos.StateRepo, repos.EventRepo, pub, log)
	loop := service.NewLoop(unit, scheduler, handler, service.NewMonotonicClock(), journal, log)

	services := service.NewService(repos, cfg.ThresholdC)
	apiHandler := handlers.NewHandler(services, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start HTTP status mirror
	var srv *server.Server
	if cfg.MirrorPort != "" {
		srv = server.New(cfg.MirrorPort, apiHandler.InitRoutes())
		runHTTPServer(srv, log)
	}

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		loop.Run(ctx)
	}()

	log.Infow("heater relay started",
		"url", controlURL(listener.Addr()),
		"mode", cfg.InitialMode,
		"threshold_c", cfg.ThresholdC,
		"poll_interval", cfg.PollInterval,
		"read_timeout", cfg.ReadTimeout,
		"mirror_port", cfg.MirrorPort)

	// graceful shutdown
	waitForShutdown(cancel, loopDone, srv, log)
}

// openDB initializes the SQLite journal.
func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "heater.db")
		path = "heater.db"
	}
	return db.InitDB(path)
}

func openRelay(cfg settings) (actuator, error) {
	switch cfg.RelayDriver {
	case driverGPIO:
		return relay.NewGPIO(cfg.Chip, cfg.RelayLine, cfg.IndicatorLine)
	case driverMemory, "":
		return relay.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown relay driver %q", cfg.RelayDriver)
	}
}

func openSensor(cfg settings, heaterOn func() bool) (service.Sensor, error) {
	switch cfg.SensorDriver {
	case driverSimulated, "":
		return sensor.NewSimulated(cfg.Sim, heaterOn), nil
	default:
		return nil, fmt.Errorf("unknown sensor driver %q", cfg.SensorDriver)
	}
}

// openPublisher connects to the broker when one is configured. A broker
// that cannot be reached is logged and the relay runs without MQTT. The
// control loop only ever enqueues; delivery happens on Async's goroutine.
func openPublisher(cfg settings, log *logger.Logger) publisher {
	if cfg.MQTTBroker == "" {
		return mqtt.Noop{}
	}
	pub, err := mqtt.NewRealPublisher(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTPrefix)
	if err != nil {
		log.Warnw("mqtt unavailable; continuing without it", "err", err, "broker", cfg.MQTTBroker)
		return mqtt.Noop{}
	}
	log.Infow("mqtt connected", "broker", cfg.MQTTBroker, "topic_prefix", cfg.MQTTPrefix)
	return mqtt.NewAsync(pub, mqtt.DefaultQueueSize, mqtt.DefaultRetryInterval, log)
}

func controlURL(addr net.Addr) string {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok || tcp.IP == nil || tcp.IP.IsUnspecified() {
		host, _ := os.Hostname()
		if host == "" {
			host = "localhost"
		}
		if ok {
			return fmt.Sprintf("http://%s:%d/", host, tcp.Port)
		}
		return "http://" + host + "/"
	}
	return "http://" + tcp.String() + "/"
}

// runHTTPServer runs the mirror in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		if err := srv.Run(); err != nil {
			log.Errorw("status mirror stopped", "err", err)
		}
	}()
}

// waitForShutdown blocks until SIGINT/SIGTERM, stops the loop, then the mirror.
func waitForShutdown(cancel context.CancelFunc, loopDone <-chan struct{}, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	s := <-quit

	log.Infow("shutting down", "signal", s.String())

	cancel()
	select {
	case <-loopDone:
	case <-time.After(shutdownTimeout):
		log.Warnw("control loop did not stop in time")
	}

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("status mirror forced to shutdown", "err", err)
	}
}
