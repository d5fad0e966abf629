package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/tuya/fastdata/internal/httpserver"
	"github.com/tuya/fastdata/internal/model"
)

const defaultBindHost = "0.0.0.0"

// appConfig is the backend runtime configuration.
type appConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Addr           string `mapstructure:"addr"`
	DataDir        string `mapstructure:"data-dir"`
	DBPath         string `mapstructure:"db-path"`
	MaxUploadBytes int64  `mapstructure:"max-upload-bytes"`
	CORSAllowAll   bool   `mapstructure:"cors-allow-all"`
	LogLevel       string `mapstructure:"log-level"`
	ConfigPath     string `mapstructure:"-"` // not from config file
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("FASTDATA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("host", defaultBindHost)
	v.SetDefault("port", model.DefaultBackendPort)
	v.SetDefault("data-dir", "")
	v.SetDefault("db-path", filepath.Join(home, ".local", "share", "fastdata", "backend.duckdb"))
	v.SetDefault("max-upload-bytes", httpserver.DefaultMaxUploadBytes)
	v.SetDefault("cors-allow-all", true)
	v.SetDefault("log-level", "info")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "fastdata", "backend.yml"))
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
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.MaxUploadBytes <= 0 {
		return cfg, fmt.Errorf("invalid max-upload-bytes: %d", cfg.MaxUploadBytes)
	}

	// Expand ~ in db-path and data-dir
	for _, p := range []*string{&cfg.DBPath, &cfg.DataDir} {
		if strings.HasPrefix(*p, "~/") {
			*p = filepath.Join(home, (*p)[2:])
		}
	}

	if cfg.Addr == "" {
		cfg.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	}

	return cfg, nil
}
