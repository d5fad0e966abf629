package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tuya/fastdata/internal/fetch"
	"github.com/tuya/fastdata/internal/upload"
)

const (
	searchLoadTimeout = 15 * time.Second
	healthDelay       = 500 * time.Millisecond
	healthInterval    = 30 * time.Second
)

// loadSearchDataCmd fetches every dataset off the UI loop.
func (m *DashboardModel) loadSearchDataCmd() tea.Cmd {
	shell := m.shell
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchLoadTimeout)
		defer cancel()
		return searchDataLoadedMsg{index: shell.LoadSearchData(ctx)}
	}
}

// healthCmd probes the backend with retry and backoff.
func (m *DashboardModel) healthCmd() tea.Cmd {
	if m.health == nil {
		return nil
	}
	probe := m.health
	retries := m.healthRetries
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := fetch.Retry(ctx, retries, healthDelay, probe)
		return healthMsg{err: err, at: time.Now()}
	}
}

// scheduleHealth re-probes after healthInterval.
func (m *DashboardModel) scheduleHealth() tea.Cmd {
	if m.health == nil {
		return nil
	}
	return tea.Tick(healthInterval, func(time.Time) tea.Msg { return healthTickMsg{} })
}

// healthTickMsg triggers a periodic probe.
type healthTickMsg struct{}

// uploadCmd sends fi and reports back to flow. The request is not tied to
// the section being visible.
func (m *DashboardModel) uploadCmd(flow *upload.Flow, fi upload.FileInfo) tea.Cmd {
	client := m.uploader
	timeout := m.uploadTimeout
	log := m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := client.Upload(ctx, fi)
		if err != nil {
			log.Warn("upload failed", zap.String("file", fi.Name), zap.Error(err))
		} else {
			log.Info("upload sent", zap.String("file", fi.Name), zap.Int("status", resp.Status))
		}
		return uploadDoneMsg{flow: flow, resp: resp, err: err}
	}
}

// debounceSearchCmd schedules a search for the newest keystroke.
func (m *DashboardModel) debounceSearchCmd() tea.Cmd {
	seq := m.debounce.Next()
	return tea.Tick(m.debounce.Delay, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

// expiryCmds schedules dismissal of notifications posted since the last call.
func (m *DashboardModel) expiryCmds() tea.Cmd {
	posted := m.shell.Notifier.Drain()
	if len(posted) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(posted))
	for _, n := range posted {
		id := n.ID
		cmds = append(cmds, tea.Tick(n.Duration, func(time.Time) tea.Msg {
			return notifyExpireMsg{id: id}
		}))
	}
	return tea.Batch(cmds...)
}
