package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tuya/fastdata/internal/fetch"
	"github.com/tuya/fastdata/internal/tui"
	"github.com/tuya/fastdata/internal/upload"
)

func runTUI(cfg cliConfig, log *zap.Logger) error {
	shell, closeShell, err := openShell(cfg, log)
	if err != nil {
		return err
	}
	defer closeShell()

	shell.Start()

	httpClient := &http.Client{Timeout: cfg.UploadTimeout}
	healthURL := strings.TrimRight(cfg.BackendURL, "/") + "/health"

	dashboard := tui.NewDashboardModel(tui.Deps{
		App: shell,
		Uploader: &upload.Client{
			URL:    cfg.uploadURL(),
			Source: cfg.UploadSource,
			HTTP:   httpClient,
		},
		Health: func(ctx context.Context) error {
			var body map[string]any
			return fetch.JSON(ctx, &http.Client{Timeout: 5 * time.Second}, healthURL, &body)
		},
		HealthRetries:      cfg.HealthRetries,
		UploadTimeout:      cfg.UploadTimeout,
		SearchDebounce:     cfg.SearchDebounce,
		Settings:           cfg.settingRows(),
		Log:                log.Named("tui"),
		ReverseScrollWheel: cfg.ReverseScrollWheel,
	})
	app := tui.NewApp(tui.NewDashboardPage(dashboard))

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}
	log.Info("dashboard closed", zap.String("section", shell.Sidebar.Current()))
	return nil
}
