package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all probe tunables. Everything has a working default so the
// binary runs with no config file at all.
type Config struct {
	// Output
	Format string `mapstructure:"format"` // text, json, yaml

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	LogFile   string `mapstructure:"log_file"` // empty = stderr only
	LogMaxMB  int    `mapstructure:"log_max_mb"`

	// Windows Update health probe
	DetectStaleDays  int     `mapstructure:"detect_stale_days"`  // last update scan older than this warns
	InstallStaleDays int     `mapstructure:"install_stale_days"` // last successful install older than this warns
	MinDiskSpaceGB   float64 `mapstructure:"min_disk_space_gb"`
	QueryPending     bool    `mapstructure:"query_pending"` // query the update agent for pending updates

	// Patch compliance probe
	PatchWarnDays int `mapstructure:"patch_warn_days"` // days behind latest Patch Tuesday before warning
	PatchCritDays int `mapstructure:"patch_crit_days"`

	// Optional support-page scrape for the newest cumulative KB
	ScrapeEnabled    bool   `mapstructure:"scrape_enabled"`
	ScrapeURL        string `mapstructure:"scrape_url"` // empty = per-OS default
	ScrapeTimeoutSec int    `mapstructure:"scrape_timeout_sec"`

	// Services the Windows Update probe checks, in "name:expected" form
	// where expected is running, stopped or manual. Empty = built-in set.
	UpdateServices []string `mapstructure:"update_services"`
}

func Default() *Config {
	return &Config{
		Format:           "text",
		LogLevel:         "warn",
		LogFormat:        "text",
		LogMaxMB:         10,
		DetectStaleDays:  7,
		InstallStaleDays: 40,
		MinDiskSpaceGB:   5,
		QueryPending:     true,
		PatchWarnDays:    40,
		PatchCritDays:    70,
		ScrapeEnabled:    false,
		ScrapeTimeoutSec: 15,
	}
}

// Load reads the config file (explicit path, then the platform config dir,
// then the working directory) and applies WINPROBE_* env overrides.
// A missing file is not an error; defaults apply.
func Load(cfgFile string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("winprobe")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir())
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("WINPROBE")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func configDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("ProgramData"), "Winprobe")
	case "darwin":
		return "/Library/Application Support/Winprobe"
	default:
		return "/etc/winprobe"
	}
}
