package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/tuya/fastdata/internal/app"
	"github.com/tuya/fastdata/internal/duckdb"
	"github.com/tuya/fastdata/internal/model"
	"github.com/tuya/fastdata/internal/navbar"
	"github.com/tuya/fastdata/internal/notify"
	"github.com/tuya/fastdata/internal/prefs"
	"github.com/tuya/fastdata/internal/registry"
	"github.com/tuya/fastdata/internal/searchdata"
)

// openShell opens the preference database and builds an unstarted shell.
// If the database cannot be opened the shell keeps preferences in memory
// for this session. The returned close function releases the database.
func openShell(cfg cliConfig, log *zap.Logger) (*app.App, func(), error) {
	var kv model.KVBackend
	store, err := duckdb.NewStore(cfg.PrefsPath)
	if err != nil {
		log.Warn("preferences unavailable, using memory",
			zap.String("path", cfg.PrefsPath), zap.Error(err))
		store = nil
		kv = prefs.NewMemory()
	} else {
		kv = store
	}
	closeStore := func() {
		if store == nil {
			return
		}
		if err := store.Close(); err != nil {
			log.Warn("closing preferences", zap.Error(err))
		}
	}

	searchMode, _ := navbar.ParseSearchMode(cfg.SearchMode)
	notifyMode, _ := notify.ParseMode(cfg.NotifyMode)

	shell, err := app.New(app.Deps{
		Registry: registry.Default(),
		Prefs:    prefs.New(kv, log.Named("prefs")),
		Notifier: notify.New(notifyMode, cfg.NotifyDuration),
		Loader: &searchdata.Loader{
			BaseURL: cfg.BackendURL,
			Path:    cfg.DataPath,
			Client:  &http.Client{Timeout: cfg.UploadTimeout},
			Log:     log.Named("searchdata"),
		},
		SearchMode: searchMode,
		Log:        log,
	})
	if err != nil {
		closeStore()
		return nil, nil, err
	}

	return shell, func() {
		shell.Stop()
		closeStore()
	}, nil
}
