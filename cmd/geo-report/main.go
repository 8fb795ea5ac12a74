package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/trhaseeb/geo-report/internal/api"
	"github.com/trhaseeb/geo-report/internal/config"
	"github.com/trhaseeb/geo-report/internal/dispatcher"
	"github.com/trhaseeb/geo-report/internal/feature"
	"github.com/trhaseeb/geo-report/internal/handlers"
	"github.com/trhaseeb/geo-report/internal/logging"
	"github.com/trhaseeb/geo-report/internal/mapview"
	"github.com/trhaseeb/geo-report/internal/monitor"
	intOtel "github.com/trhaseeb/geo-report/internal/otel"
	"github.com/trhaseeb/geo-report/internal/project"
	"github.com/trhaseeb/geo-report/internal/rotation"
	"github.com/trhaseeb/geo-report/internal/storage"
	"github.com/trhaseeb/geo-report/internal/telemetry"
	"github.com/trhaseeb/geo-report/internal/ui"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.1.0"
	BuildDate      string = "unknown"

	AppName string = "geo_report"
)

// file paths
var (
	// WorkDir is the directory the engine runs from. Config and the
	// projects directory are resolved against it.
	WorkDir string

	LogFilePath string
	LogFile     *os.File
)

// global variables
var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	SessionStartTime time.Time = time.Now()

	// Session state
	projectContext  *project.Context
	markers         *feature.Collection
	coordinator     *rotation.Coordinator
	bridge          *project.Bridge
	rotationInput   *ui.NumericInput
	rotationReadout *ui.TextLabel

	// Services
	handlerService  *handlers.Service
	monitorService  *monitor.Service
	eventDispatcher *dispatcher.Dispatcher
	influxManager   *telemetry.Manager
	recorder        *telemetry.Recorder
	apiClient       *api.Client

	// Storage backend
	storageBackend storage.Backend
)

func main() {
	if err := setup(); err != nil {
		fmt.Fprintf(os.Stderr, "setup failed: %v\n", err)
		os.Exit(1)
	}

	if err := startServices(); err != nil {
		Logger.Error("Failed to start services", "error", err)
		shutdown()
		os.Exit(1)
	}

	exitCode := runCLI(os.Args[1:])
	shutdown()
	os.Exit(exitCode)
}

// setup loads config and brings up logging. Until the log file is open,
// everything goes to the console.
func setup() error {
	var err error

	WorkDir, err = os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

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

	LogFilePath = logging.LogFilePath(logsDir, AppName, SessionStartTime)
	if _, err := os.Stat(LogFilePath); err == nil {
		os.Rename(LogFilePath, LogFilePath+".old")
	}

	LogFile, err = os.OpenFile(LogFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		Logger.Error("Failed to create/open log file!", "error", err, "path", LogFilePath)
	}

	// Initialize OTel provider if enabled (after log file is created)
	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		OTelProvider, err = intOtel.New(intOtel.Config{
			Enabled:      otelCfg.Enabled,
			ServiceName:  otelCfg.ServiceName,
			BatchTimeout: otelCfg.BatchTimeout,
			LogWriter:    LogFile,
			Endpoint:     otelCfg.Endpoint,
			Insecure:     otelCfg.Insecure,
		})
		if err != nil {
			Logger.Error("Failed to initialize OTel provider", "error", err)
		} else if otelCfg.Endpoint != "" {
			Logger.Info("OTel provider initialized", "file", LogFilePath, "endpoint", otelCfg.Endpoint)
		} else {
			Logger.Info("OTel provider initialized", "file", LogFilePath)
		}
	}

	// GELF shipping joins the handler fan-out before the final Setup
	graylogCfg := config.GetGraylogConfig()
	if graylogCfg.Enabled {
		gelfHandler, err := logging.NewGelfHandler(graylogCfg.Address, viper.GetString("logLevel"))
		if err != nil {
			Logger.Error("Failed to connect GELF handler", "error", err, "address", graylogCfg.Address)
		} else {
			SlogManager.AddHandler(gelfHandler)
			Logger.Info("GELF log shipping enabled", "address", graylogCfg.Address)
		}
	}

	// Re-setup logging with file output and optional OTel
	var otelLogProvider *sdklog.LoggerProvider
	if OTelProvider != nil {
		otelLogProvider = OTelProvider.LoggerProvider()
	}
	SlogManager.Setup(LogFile, viper.GetString("logLevel"), otelLogProvider)
	Logger = SlogManager.Logger()
	Logger.Info("Logging to file", "path", LogFilePath)

	apiClient = api.New(viper.GetString("api.serverUrl"), viper.GetString("api.apiKey"))
	checkServerStatus()

	return nil
}

func checkServerStatus() {
	if err := apiClient.Healthcheck(); err != nil {
		Logger.Info("Report server is offline")
	} else {
		Logger.Info("Report server is online")
	}
}

// startServices wires the session, the rotation coordinator, storage,
// telemetry, the dispatcher command surface and the status monitor.
func startServices() error {
	functionName := "startServices"
	var err error

	markers = feature.NewCollection()
	projectContext = project.NewContext()

	rotationInput = ui.NewNumericInput(rotation.ElementRotationInput)
	rotationReadout = ui.NewTextLabel(rotation.ElementRotationReadout)
	elements := ui.NewRegistry()
	elements.Add(rotationInput)
	elements.Add(rotationReadout)

	var controlFactory mapview.ControlFactory
	if viper.GetBool("map.rotationControl") {
		controlFactory = mapview.NewCompassControl
	}

	coordinator = rotation.NewCoordinator(rotation.Dependencies{
		Logger:         Logger,
		Widget:         mapview.NewTileMap(viper.GetString("map.basemap")),
		ControlFactory: controlFactory,
		Elements:       elements,
		Markers:        markers,
	})
	cap := coordinator.Capability()
	Logger.Info("Rotation capability probed",
		"mapSupportsBearing", cap.MapSupportsBearing,
		"rotationControlAvailable", cap.RotationControlAvailable)

	bridge = project.NewBridge(Logger, projectContext, coordinator, markers)

	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	// Telemetry: Influx when reachable, gzipped line protocol otherwise
	influxManager = telemetry.NewManager(zlog, filepath.Join(viper.GetString("logsDir"), "telemetry_backup.gz"))
	if config.GetInfluxConfig().Enabled {
		if err := influxManager.Connect(); err != nil {
			Logger.Warn("Telemetry not connected", "error", err)
		}
	}
	recorder = telemetry.NewRecorder(telemetry.Dependencies{
		Influx:     influxManager,
		LogManager: SlogManager,
	})
	recorder.Start()

	storageCfg := config.GetStorageConfig()
	storageBackend, err = storage.NewBackend(storageCfg, SlogManager, zlog)
	if err != nil {
		SlogManager.WriteLog(functionName, fmt.Sprintf(`Error creating storage backend: %v`, err), "ERROR")
		return err
	}
	if err = storageBackend.Init(); err != nil {
		SlogManager.WriteLog(functionName, fmt.Sprintf(`Error initializing storage backend: %v`, err), "ERROR")
		return err
	}
	Logger.Info("Storage backend initialized", "type", storageCfg.Type)

	eventDispatcher, err = dispatcher.New(logging.NewDispatcherLogger(zlog))
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}

	monitorService = monitor.NewService(monitor.Dependencies{
		LogManager:     SlogManager,
		ProjectContext: projectContext,
		Coordinator:    coordinator,
		Markers:        markers,
		Recorder:       recorder,
		StatusDir:      viper.GetString("statusDir"),
	})
	if !monitorService.IsRunning() {
		monitorService.Start()
	}

	handlerService = handlers.NewService(handlers.Dependencies{
		LogManager:     SlogManager,
		ProjectContext: projectContext,
		Coordinator:    coordinator,
		Bridge:         bridge,
		Markers:        markers,
		Recorder:       recorder,
		Monitor:        monitorService,
		Version:        CurrentVersion,
	})
	handlerService.SetBackend(storageBackend)
	handlerService.Register(eventDispatcher)
	Logger.Info("Command handlers registered with dispatcher")

	SlogManager.WriteLog(functionName, "Services started successfully", "INFO")
	return nil
}

// shutdown stops services in reverse start order and flushes log exporters.
func shutdown() {
	if monitorService != nil {
		monitorService.Stop()
	}
	if recorder != nil {
		recorder.Stop()
	}
	if coordinator != nil {
		coordinator.Close()
	}
	if storageBackend != nil {
		if err := storageBackend.Close(); err != nil {
			Logger.Error("Failed to close storage backend", "error", err)
		}
	}
	if influxManager != nil {
		influxManager.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if SlogManager != nil {
		if err := SlogManager.Flush(ctx); err != nil {
			Logger.Warn("Failed to flush logs", "error", err)
		}
	}
	if OTelProvider != nil {
		if err := OTelProvider.Shutdown(ctx); err != nil {
			Logger.Warn("Failed to shut down OTel provider", "error", err)
		}
	}
	if LogFile != nil {
		LogFile.Close()
	}
}
