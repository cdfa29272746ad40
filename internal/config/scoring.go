package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ScoringConfig is the single banding table used for diagnostics scores.
// A percentage below CriticalBelow is critical, below MediumBelow is medium,
// anything else is good.
type ScoringConfig struct {
	CriticalBelow float64 `mapstructure:"criticalBelow"`
	MediumBelow   float64 `mapstructure:"mediumBelow"`
	HistoryLimit  int     `mapstructure:"historyLimit"`
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		CriticalBelow: 40,
		MediumBelow:   75,
		HistoryLimit:  10,
	}
}

// ScoringHolder serves the current scoring config and hot-reloads it from disk.
type ScoringHolder struct {
	current atomic.Value // holds ScoringConfig
}

func NewScoringHolder() (*ScoringHolder, error) {
	v := viper.New()

	v.SetConfigName("scoring")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/tourbase")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TOURBASE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultScoringConfig()
	v.SetDefault("scoring.criticalBelow", defaults.CriticalBelow)
	v.SetDefault("scoring.mediumBelow", defaults.MediumBelow)
	v.SetDefault("scoring.historyLimit", defaults.HistoryLimit)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg ScoringConfig
	if err := v.UnmarshalKey("scoring", &cfg); err != nil {
		return nil, err
	}
	if err := validateScoringConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ScoringHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ScoringConfig
		if err := v.UnmarshalKey("scoring", &updated); err != nil {
			log.Printf("[scoring-config] reload failed: %v", err)
			return
		}
		if err := validateScoringConfig(updated); err != nil {
			log.Printf("[scoring-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[scoring-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticScoringHolder wraps a fixed config, bypassing file loading.
// Intended for tests and embedded callers.
func NewStaticScoringHolder(cfg ScoringConfig) (*ScoringHolder, error) {
	if err := validateScoringConfig(cfg); err != nil {
		return nil, err
	}
	holder := &ScoringHolder{}
	holder.current.Store(cfg)
	return holder, nil
}

func (h *ScoringHolder) Get() ScoringConfig {
	return h.current.Load().(ScoringConfig)
}

func validateScoringConfig(cfg ScoringConfig) error {
	if cfg.CriticalBelow <= 0 || cfg.CriticalBelow > 100 {
		return errors.New("scoring.criticalBelow must be in (0, 100]")
	}
	if cfg.MediumBelow <= cfg.CriticalBelow || cfg.MediumBelow > 100 {
		return errors.New("scoring.mediumBelow must be in (criticalBelow, 100]")
	}
	if cfg.HistoryLimit <= 0 {
		return errors.New("scoring.historyLimit must be positive")
	}
	return nil
}
