package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mapforge/engine/internal/api"
	"github.com/mapforge/engine/internal/catalog"
	"github.com/mapforge/engine/internal/channel"
	"github.com/mapforge/engine/internal/config"
	"github.com/mapforge/engine/internal/dispatcher"
	"github.com/mapforge/engine/internal/events"
	"github.com/mapforge/engine/internal/handlers"
	"github.com/mapforge/engine/internal/influx"
	"github.com/mapforge/engine/internal/logging"
	"github.com/mapforge/engine/internal/monitor"
	intOtel "github.com/mapforge/engine/internal/otel"
	"github.com/mapforge/engine/internal/parser"
	"github.com/mapforge/engine/internal/registry"
	"github.com/mapforge/engine/internal/scheduler"
	"github.com/mapforge/engine/internal/session"
	"github.com/mapforge/engine/internal/validate"
	"github.com/mapforge/engine/pkg/bridge"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// EngineVersion can be overridden at build time via ldflags.
var (
	EngineVersion string = "0.0.1"
	BuildDate     string = "unknown"

	EngineName string = "mapforge_engine"
)

var (
	// WorkDir is the directory holding the config file, logs, and local catalog.
	WorkDir string

	EngineLogFilePath string
	EngineLogFile     *os.File

	SessionStartTime time.Time = time.Now()
)

var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	// Services
	apiClient       *api.Client
	sessionCtx      *session.Context
	feed            *events.Feed
	animScheduler   *scheduler.Scheduler
	tokenRegistry   *registry.Registry
	catalogBackend  catalog.Backend
	handlerManager  *handlers.Manager
	monitorService  *monitor.Service
	influxManager   *influx.Manager
	eventDispatcher *dispatcher.Dispatcher
)

func main() {
	var err error

	WorkDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to resolve working directory: %v\n", err)
		os.Exit(1)
	}

	// Logging goes to stderr until the log file is open; stdout belongs to
	// the bridge protocol.
	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(nil, viper.GetString("logLevel"), nil)
	Logger = SlogManager.Logger()

	if err = config.Load(WorkDir); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		Logger.Info("Loaded config")
	}

	logsDir := viper.GetString("logsDir")
	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		os.Mkdir(logsDir, 0755)
	}

	EngineLogFilePath = filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", EngineName, SessionStartTime.Format("20060102_150405")),
	)
	if _, err := os.Stat(EngineLogFilePath); err == nil {
		os.Rename(EngineLogFilePath, EngineLogFilePath+".old")
	}
	EngineLogFile, err = os.OpenFile(EngineLogFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		Logger.Error("Failed to create/open log file!", "error", err, "path", EngineLogFilePath)
	}

	// Initialize OTel provider if enabled (after log file is created)
	if viper.GetBool("otel.enabled") {
		OTelProvider, err = intOtel.New(intOtel.Config{
			Enabled:      true,
			ServiceName:  EngineName,
			BatchTimeout: 5 * time.Second,
			LogWriter:    EngineLogFile,
			Endpoint:     viper.GetString("otel.logs.endpoint"),
			Insecure:     true,
		})
		if err != nil {
			Logger.Error("Failed to initialize OTel provider", "error", err)
		} else {
			Logger.Info("OTel provider initialized", "file", EngineLogFilePath)
		}
	}

	sessionCtx = session.NewContext()

	// Every record carries the active board name
	SlogManager.Context = func() []slog.Attr {
		return []slog.Attr{slog.String("board", sessionCtx.GetBoard().Name)}
	}

	// Re-setup logging with file output and optional OTel
	var otelLogProvider *sdklog.LoggerProvider
	if OTelProvider != nil {
		otelLogProvider = OTelProvider.LoggerProvider()
	}
	SlogManager.Setup(EngineLogFile, viper.GetString("logLevel"), otelLogProvider)
	Logger = SlogManager.Logger()
	Logger.Info("Logging to file", "path", EngineLogFilePath,
		"version", EngineVersion, "buildDate", BuildDate)

	zlog := zerolog.New(EngineLogFile).With().Timestamp().Logger()

	if err = startServices(zlog); err != nil {
		Logger.Error("Failed to start services!", "error", err)
		os.Exit(1)
	}

	out := newBridgeWriter(os.Stdout)
	out.write(bridge.Message{Type: bridge.TypeResult, Command: bridge.CommandReady, Result: EngineVersion})

	stop := make(chan struct{})
	frameDone := make(chan struct{})
	go func() {
		frameLoop(out, stop)
		close(frameDone)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		bridgeLoop(out)
		close(done)
	}()

	select {
	case sig := <-sigs:
		Logger.Info("Received signal, shutting down", "signal", sig.String())
	case <-done:
		Logger.Info("Bridge closed stdin, shutting down")
	}

	close(stop)
	<-frameDone

	// Flush the bridge stream only once no writer remains. On the signal
	// path the command loop may still hold the stream.
	select {
	case <-done:
		out.close()
	default:
	}

	shutdown()
}

func startServices(zlog zerolog.Logger) error {
	feed = events.NewFeed(viper.GetInt("events.capacity"))

	animScheduler = scheduler.New(scheduler.Options{
		MaxConcurrent: viper.GetInt("scheduler.maxConcurrent"),
		Logger:        Logger,
		Sink:          feed,
	})

	validation := validate.Config{
		EnforceDND:            viper.GetBool("validation.enforceDnd"),
		Strict:                viper.GetBool("validation.strict"),
		AllowCustomConditions: viper.GetBool("validation.allowCustomConditions"),
	}

	tokenRegistry = registry.New(registry.Options{
		Validation:  validation,
		AllowCustom: validation.AllowCustomConditions,
		Animations:  animScheduler,
		Feed:        feed,
		Logger:      Logger,
	})

	var err error
	catalogBackend, err = catalog.NewBackend(config.Catalog(), zlog)
	if err != nil {
		return fmt.Errorf("failed to create catalog backend: %w", err)
	}
	if err = catalogBackend.Init(); err != nil {
		return fmt.Errorf("failed to init catalog backend: %w", err)
	}
	Logger.Info("Catalog backend ready", "type", config.Catalog().Type)

	if viper.GetBool("influx.enabled") {
		influxManager = influx.NewManager(zlog, viper.GetString("logsDir"))
		if err := influxManager.Connect(); err != nil {
			Logger.Warn("InfluxDB unavailable, metrics disabled", "error", err)
			influxManager = nil
		}
	}

	eventDispatcher, err = dispatcher.New(logging.NewDispatcherLogger(zlog))
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}

	if viper.GetBool("api.enabled") {
		apiClient = api.New(viper.GetString("api.serverUrl"), viper.GetString("api.apiKey"))
		go checkServerStatus()
	}

	handlerManager = handlers.NewManager(handlers.Dependencies{
		Registry:   tokenRegistry,
		Scheduler:  animScheduler,
		Parser:     parser.NewParser(Logger),
		Catalog:    catalogBackend,
		Session:    sessionCtx,
		LogManager: SlogManager,
		Validation: validation,
		API:        apiClient,
		Influx:     influxManager,
		ExportDir:  viper.GetString("exportsDir"),
	})
	handlerManager.RegisterHandlers(eventDispatcher)

	monitorService = monitor.NewService(monitor.Dependencies{
		Registry:   tokenRegistry,
		Scheduler:  animScheduler,
		Feed:       feed,
		Influx:     influxManager,
		LogManager: SlogManager,
		StatusDir:  WorkDir,
	})
	if err = monitorService.Start(); err != nil {
		Logger.Warn("Failed to start monitor service", "error", err)
	}

	return nil
}

// frameLoop drives animation ticks and relays feed entries to the bridge.
func frameLoop(out *bridgeWriter, stop <-chan struct{}) {
	interval := time.Duration(viper.GetInt("scheduler.frameIntervalMs")) * time.Millisecond
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			start := time.Now()
			animScheduler.Tick(now)
			monitorService.RecordTickDuration(time.Since(start))

			for _, e := range feed.Drain() {
				if !out.tryWrite(bridge.Message{Type: bridge.TypeEvent, Event: &e}) {
					Logger.Debug("Bridge stream full, dropping event", "kind", e.Kind)
				}
			}
		case <-stop:
			return
		}
	}
}

// bridgeLoop reads newline-delimited JSON commands from stdin until EOF.
func bridgeLoop(out *bridgeWriter) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req bridge.Request
		if err := json.Unmarshal(line, &req); err != nil {
			out.write(bridge.Message{Type: bridge.TypeResult, Error: fmt.Sprintf("malformed request: %v", err)})
			continue
		}
		if !eventDispatcher.HasHandler(req.Command) {
			out.write(bridge.Message{Type: bridge.TypeResult, Command: req.Command, Error: "unknown command"})
			continue
		}

		result, err := eventDispatcher.Dispatch(dispatcher.Event{
			Command:   req.Command,
			Args:      req.Args,
			Timestamp: time.Now(),
		})
		msg := bridge.Message{Type: bridge.TypeResult, Command: req.Command, Result: result}
		if err != nil {
			msg.Error = err.Error()
		}
		out.write(msg)
	}
	if err := scanner.Err(); err != nil {
		Logger.Error("Bridge read failed", "error", err)
	}
}

func checkServerStatus() {
	if err := apiClient.Healthcheck(); err != nil {
		Logger.Info("Map frontend is offline", "error", err)
	} else {
		Logger.Info("Map frontend is online")
	}
}

func shutdown() {
	Logger.Info("Shutting down")

	monitorService.Stop()

	if err := catalogBackend.Close(); err != nil {
		Logger.Error("Failed to close catalog backend", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := SlogManager.Flush(ctx); err != nil {
		Logger.Error("Failed to flush logs", "error", err)
	}
	if OTelProvider != nil {
		if err := OTelProvider.Flush(ctx); err != nil {
			Logger.Error("Failed to flush OTel provider", "error", err)
		}
		if err := OTelProvider.Shutdown(ctx); err != nil {
			Logger.Error("Failed to shut down OTel provider", "error", err)
		}
	}

	if EngineLogFile != nil {
		EngineLogFile.Close()
	}
}

// bridgeWriter serializes concurrent writes to the bridge stream. The frame
// loop and the command loop both write to it; a single goroutine encodes.
type bridgeWriter struct {
	ch   channel.Channel[bridge.Message]
	done chan struct{}
}

func newBridgeWriter(w *os.File) *bridgeWriter {
	bw := &bridgeWriter{
		ch:   channel.New[bridge.Message](1024),
		done: make(chan struct{}),
	}
	enc := json.NewEncoder(w)
	go func() {
		defer close(bw.done)
		for msg := range bw.ch.Receive() {
			if err := enc.Encode(&msg); err != nil {
				Logger.Error("Failed to write bridge message", "error", err)
			}
		}
	}()
	return bw
}

func (w *bridgeWriter) write(msg bridge.Message) {
	w.ch.Send(msg)
}

// tryWrite drops instead of blocking; feed events are best-effort.
func (w *bridgeWriter) tryWrite(msg bridge.Message) bool {
	return w.ch.TrySend(msg)
}

func (w *bridgeWriter) close() {
	w.ch.Close()
	<-w.done
}
