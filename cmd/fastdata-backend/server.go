package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/tuya/fastdata/internal/duckdb"
	"github.com/tuya/fastdata/internal/httpserver"
)

// runServer opens the receipt store and serves the HTTP API until a
// signal arrives.
func runServer(cfg appConfig) error {
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := duckdb.NewStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize DuckDB: %w", err)
	}
	defer store.Close()

	srv := httpserver.NewServer(httpserver.Config{
		Addr:           cfg.Addr,
		DataDir:        cfg.DataDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
		CORSAllowAll:   cfg.CORSAllowAll,
		Log:            logger.Named("http"),
	}, store)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}

	printStartupBanner(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	// Shutdown: wait for a signal, then give in-flight requests a deadline.
	g.Go(func() error {
		<-gctx.Done()
		fmt.Println("\nShutting down gracefully...")
		return srv.Stop()
	})

	// Periodic receipt count in the log.
	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n, err := store.UploadCount(); err == nil {
					logger.Debug("uploads stored", zap.Int64("count", n))
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.Warn("server: shutdown error", zap.Error(err))
	}
	return nil
}

// newLogger logs to stderr; the backend has no TUI competing for it.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log-level: %w", err)
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config.Build()
}

func printStartupBanner(cfg appConfig) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	dot := dim.Render("●")

	logo := yellow.Bold(true).Render(`
    ╔╦╗╦ ╦╦ ╦╔═╗
     ║ ║ ║╚╦╝╠═╣
     ╩ ╚═╝ ╩ ╩ ╩`) + cyan.Bold(true).Render("  Fast-Data")

	ver := dim.Render("v" + version)

	var lines []string
	lines = append(lines, "")
	lines = append(lines, logo)
	lines = append(lines, "    "+ver)
	lines = append(lines, "")

	separator := dim.Render("    ─────────────────────────────────")
	lines = append(lines, separator)
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Gateway"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    %s  HTTP API       %s", check, cyan.Render(cfg.Addr)))
	lines = append(lines, fmt.Sprintf("    %s  Upload         %s", check, cyan.Render("POST /test")))
	if cfg.CORSAllowAll {
		lines = append(lines, fmt.Sprintf("    %s  CORS           %s", check, dim.Render("all origins")))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  CORS           %s", dot, dim.Render("disabled")))
	}
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Storage"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    %s  Receipts       %s", check, dim.Render(shortenPath(cfg.DBPath))))
	if cfg.DataDir != "" {
		lines = append(lines, fmt.Sprintf("    %s  Datasets       %s", check, dim.Render(shortenPath(cfg.DataDir))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Datasets       %s", dot, dim.Render("embedded samples")))
	}
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Config"))
	lines = append(lines, "")
	if cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.ConfigPath); err == nil {
			lines = append(lines, fmt.Sprintf("    %s  Config File    %s", check, dim.Render(shortenPath(cfg.ConfigPath))))
		} else {
			lines = append(lines, fmt.Sprintf("    %s  Config File    %s", dot, dim.Render("default (no file)")))
		}
	}

	lines = append(lines, "")
	lines = append(lines, separator)
	lines = append(lines, "")
	lines = append(lines, "    "+dim.Render("Press ")+yellow.Render("Ctrl+C")+dim.Render(" to stop"))
	lines = append(lines, "")

	fmt.Println(strings.Join(lines, "\n"))
}

func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
