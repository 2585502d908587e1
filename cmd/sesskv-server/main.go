// Package main provides the entry point for sesskv-server.
//
// sesskv-server hosts the in-memory store and session modules behind a
// RESP command surface, plus an admin HTTP endpoint for metrics and
// bridge diagnostics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/modware/sesskv/internal/bridge"
	"github.com/modware/sesskv/internal/core/service"
	"github.com/modware/sesskv/internal/host"
	"github.com/modware/sesskv/internal/infra/buildinfo"
	"github.com/modware/sesskv/internal/infra/confloader"
	"github.com/modware/sesskv/internal/infra/shutdown"
	"github.com/modware/sesskv/internal/server/config"
	"github.com/modware/sesskv/internal/server/httpserver"
	"github.com/modware/sesskv/internal/server/respserver"
	"github.com/modware/sesskv/internal/sessmod"
	"github.com/modware/sesskv/internal/storage/memory"
	"github.com/modware/sesskv/internal/storemod"
	"github.com/modware/sesskv/internal/telemetry/logger"
	"github.com/modware/sesskv/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("sesskv-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, slogLogger, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting sesskv-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)

	metrics := metric.New()

	// Host runtime and modules. Load order matters: the session module's
	// bridge binds symbols the store module exports.
	rt := host.NewRuntime(slogLogger)

	var store *memory.Store
	if cfg.Modules.Store {
		store = memory.New()
		if err := rt.LoadModule(storemod.New(store, slogLogger, metrics)); err != nil {
			return fmt.Errorf("load store module: %w", err)
		}
	}

	var resolver *bridge.Resolver
	if cfg.Modules.Session {
		resolver = bridge.NewResolver(rt, slogLogger, metrics,
			bridge.WithForceFallback(cfg.Bridge.ForceFallback))
		registry := service.NewSessionRegistry(resolver, slogLogger, metrics)
		if err := rt.LoadModule(sessmod.New(registry, slogLogger)); err != nil {
			return fmt.Errorf("load session module: %w", err)
		}
	} else {
		// The admin bridge endpoints stay meaningful without the session
		// module; the resolver just reports how a session module would bind.
		resolver = bridge.NewResolver(rt, slogLogger, metrics,
			bridge.WithForceFallback(cfg.Bridge.ForceFallback))
	}

	ctx := context.Background()

	respSrv := respserver.New(&respserver.Config{
		Enabled:      cfg.Server.RESP.Enabled,
		Address:      cfg.Server.RESP.Addr,
		ReadTimeout:  cfg.Server.RESP.ReadTimeout,
		WriteTimeout: cfg.Server.RESP.WriteTimeout,
		IdleTimeout:  cfg.Server.RESP.IdleTimeout,
		RateLimit:    cfg.Server.RESP.RateLimit,
	}, rt, slogLogger, metrics)
	if err := respSrv.Start(ctx); err != nil {
		return fmt.Errorf("start resp server: %w", err)
	}

	var httpSrv *httpserver.Server
	if cfg.Server.HTTP.Enabled {
		router := httpserver.NewRouter(&httpserver.RouterConfig{
			Resolver: resolver,
			Metrics:  metrics,
			Logger:   slogLogger,
		})
		httpSrv = httpserver.New(cfg.Server.HTTP.Addr, router, slogLogger)
		if err := httpSrv.Start(); err != nil {
			return fmt.Errorf("start admin http server: %w", err)
		}
	}

	// Re-apply the log level when the config file changes on disk.
	var watcher *confloader.Watcher
	if *configFile != "" {
		watcher, err = startConfigWatcher(*configFile, slogLogger)
		if err != nil {
			log.Warn("config watcher not started", "error", err)
		}
	}

	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	if watcher != nil {
		shutdownHandler.OnShutdown(func(context.Context) error {
			return watcher.Stop()
		})
	}
	if httpSrv != nil {
		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("shutting down admin http server")
			return httpSrv.Shutdown(ctx)
		})
	}
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down resp server")
		return respSrv.Shutdown(ctx)
	})

	log.Info("server started, press Ctrl+C to stop", "modules", rt.Modules())
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger.
// Returns both the logger interface and slog.Logger for components that need it.
func initLogger(cfg *config.ServerConfig) (logger.Logger, *slog.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, nil, err
	}

	logger.SetDefault(log)
	slog.SetDefault(logger.Slog())
	return log, logger.Slog(), nil
}

// startConfigWatcher re-reads the config file on change and applies the
// settings that are safe to change at runtime (currently the log level).
func startConfigWatcher(configFile string, slogLogger *slog.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(slogLogger))
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(configFile); err != nil {
		_ = watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(string) {
		cfg, err := loadConfig(configFile)
		if err != nil {
			slogLogger.Warn("config reload skipped", "error", err)
			return
		}
		logger.SetLevel(cfg.Log.Level)
		slogLogger.Info("log level re-applied from config", "level", cfg.Log.Level)
	})

	watcher.StartAsync()
	return watcher, nil
}
