package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tuya/fastdata/internal/model"
	"github.com/tuya/fastdata/internal/navbar"
	"github.com/tuya/fastdata/internal/notify"
	"github.com/tuya/fastdata/internal/tui"
)

// cliConfig holds the dashboard client configuration.
type cliConfig struct {
	BackendURL         string        `mapstructure:"backend-url"`
	UploadPath         string        `mapstructure:"upload-path"`
	DataPath           string        `mapstructure:"data-path"`
	UploadSource       string        `mapstructure:"upload-source"`
	UploadTimeout      time.Duration `mapstructure:"upload-timeout"`
	SearchMode         string        `mapstructure:"search-mode"`
	SearchDebounce     time.Duration `mapstructure:"search-debounce"`
	NotifyMode         string        `mapstructure:"notify-mode"`
	NotifyDuration     time.Duration `mapstructure:"notify-duration"`
	PrefsPath          string        `mapstructure:"prefs-path"`
	LogLevel           string        `mapstructure:"log-level"`
	HealthRetries      int           `mapstructure:"health-retries"`
	ReverseScrollWheel bool          `mapstructure:"reverse-scroll-wheel"`
	ConfigPath         string        `mapstructure:"-"` // not from config file
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("FASTDATA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("backend-url", model.DefaultBackendURL)
	v.SetDefault("upload-path", model.DefaultUploadPath)
	v.SetDefault("data-path", model.DefaultDataPath)
	v.SetDefault("upload-source", model.DefaultUploadSource)
	v.SetDefault("upload-timeout", model.DefaultUploadTimeout)
	v.SetDefault("search-mode", string(navbar.SearchLive))
	v.SetDefault("search-debounce", model.DefaultSearchDebounce)
	v.SetDefault("notify-mode", string(notify.ModeReplace))
	v.SetDefault("notify-duration", model.DefaultNotifyDuration)
	v.SetDefault("prefs-path", filepath.Join(home, ".local", "share", "fastdata", "prefs.duckdb"))
	v.SetDefault("log-level", "info")
	v.SetDefault("health-retries", model.DefaultHealthRetries)
	v.SetDefault("reverse-scroll-wheel", false)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "fastdata", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	// Expand ~ in prefs-path
	if strings.HasPrefix(cfg.PrefsPath, "~/") {
		cfg.PrefsPath = filepath.Join(home, cfg.PrefsPath[2:])
	}

	return cfg, cfg.validate()
}

func (c cliConfig) validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend-url: %q", c.BackendURL)
	}
	if _, err := navbar.ParseSearchMode(c.SearchMode); err != nil {
		return err
	}
	if _, err := notify.ParseMode(c.NotifyMode); err != nil {
		return err
	}
	if c.UploadTimeout <= 0 {
		return fmt.Errorf("invalid upload-timeout: %s", c.UploadTimeout)
	}
	if c.HealthRetries < 1 {
		return fmt.Errorf("invalid health-retries: %d", c.HealthRetries)
	}
	return nil
}

// uploadURL joins the backend base URL and the upload path.
func (c cliConfig) uploadURL() string {
	return strings.TrimRight(c.BackendURL, "/") + "/" + strings.TrimLeft(c.UploadPath, "/")
}

// settingRows lists the effective configuration for the settings panel.
func (c cliConfig) settingRows() []tui.SettingRow {
	config := c.ConfigPath
	if _, err := os.Stat(config); err != nil {
		config = "default (no file)"
	}
	return []tui.SettingRow{
		{Label: "Backend", Value: c.BackendURL},
		{Label: "Upload endpoint", Value: c.uploadURL()},
		{Label: "Upload source", Value: c.UploadSource},
		{Label: "Notifications", Value: c.NotifyMode},
		{Label: "Preferences", Value: c.PrefsPath},
		{Label: "Config file", Value: config},
	}
}
