package config

import (
	"fmt"
	"os"

	"go-gw2walls/internal/models"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

// Defaults applied after decoding. The site URLs track guildwars2.com; tests
// override them to point at local fixture servers.
const (
	DefaultBaseURL     = "https://www.guildwars2.com"
	DefaultMediaURL    = DefaultBaseURL + "/en/media/wallpapers/"
	DefaultReleasesURL = DefaultBaseURL + "/en/the-game/releases/"

	DefaultConcurrency      = 1
	DefaultNamingPolicy     = "info"
	DefaultClientTimeoutSec = 120
)

// LoadConfig reads the configuration from the specified TOML path (defaulting
// to "config.toml") and returns the populated models.Config with defaults
// filled in. A missing config file is not an error: every setting has a
// default or a flag override, so the zero config plus defaults is usable.
func LoadConfig(configFilePath string) (models.Config, error) {
	if configFilePath == "" {
		configFilePath = "config.toml" // Default path
	}
	var cfg models.Config
	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		log.Debugf("Config file %s not found, using defaults", configFilePath)
		return ApplyDefaults(cfg), nil
	}
	if _, err := toml.DecodeFile(configFilePath, &cfg); err != nil {
		return models.Config{}, fmt.Errorf("error loading config file %s: %w", configFilePath, err)
	}
	log.Infof("Configuration loaded from %s", configFilePath)
	return ApplyDefaults(cfg), nil
}

// ApplyDefaults fills in the zero-valued fields of a config.
func ApplyDefaults(cfg models.Config) models.Config {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MediaURL == "" {
		cfg.MediaURL = DefaultMediaURL
	}
	if cfg.ReleasesURL == "" {
		cfg.ReleasesURL = DefaultReleasesURL
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.NamingPolicy == "" {
		cfg.NamingPolicy = DefaultNamingPolicy
	}
	if cfg.ClientTimeoutSec <= 0 {
		cfg.ClientTimeoutSec = DefaultClientTimeoutSec
	}
	return cfg
}
