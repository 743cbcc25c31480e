package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/crmclean/pkg/api"
	"github.com/hazyhaar/crmclean/pkg/runlog"
	"github.com/hazyhaar/crmclean/pkg/schema"
)

type serveConfig struct {
	Addr       string `yaml:"addr"`
	SchemasDir string `yaml:"schemas_dir"`
	RunsDB     string `yaml:"runs_db"`
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg := loadServeConfig(*cfgPath, logger)

	svc := &api.Service{SchemasDir: cfg.SchemasDir, Logger: logger}
	if cfg.RunsDB != "" {
		db, err := runlog.Open(cfg.RunsDB)
		if err != nil {
			logger.Error("open run db", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		svc.Runs = db
	}

	// MCP tools share the HTTP endpoints; streamable HTTP transport on /mcp.
	mcpSrv := server.NewMCPServer("crmclean", version)
	api.RegisterMCPTools(mcpSrv, svc)

	root := http.NewServeMux()
	root.Handle("/", api.NewRouter(svc))
	// NewStreamableHTTPServer serves on /mcp by default.
	root.Handle("/mcp", server.NewStreamableHTTPServer(mcpSrv))

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: root,
	}

	// SIGHUP: revalidate schema overrides.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading schemas")
			if err := reloadSchemas(cfg.SchemasDir); err != nil {
				logger.Error("schema reload failed", "error", err)
			} else {
				logger.Info("schemas reloaded", "dir", cfg.SchemasDir)
			}
		}
	}()

	go func() {
		logger.Info("crmclean listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Shutdown(context.Background())
}

// reloadSchemas parses every schema override in dir. Requests load schemas
// from disk on every call, so edits take effect immediately; the SIGHUP
// handler exists to surface a broken override before the next request
// trips over it.
func reloadSchemas(dir string) error {
	for _, kind := range schema.Kinds() {
		if _, err := schema.LoadDir(dir, kind); err != nil {
			return err
		}
	}
	return nil
}

func loadServeConfig(path string, logger *slog.Logger) serveConfig {
	cfg := serveConfig{
		Addr:   ":8430",
		RunsDB: "runs.db",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}
