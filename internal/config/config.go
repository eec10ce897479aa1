// Package config holds clockr's settings. Defaults come from DefaultConfig;
// an optional INI file overrides them and command-line flags override both.
//
// Example clockr.ini:
//
//	[ui]
//	tab = laptimer
//
//	[timer]
//	granularity = 10ms
//	shared_counter = false
//
//	[alarm]
//	ring_policy = rearm
//	check_interval = 1s
//	sound = ~/sounds/alarm.wav
//
//	[notify]
//	webhook = https://hooks.example.com/services/T000/B000/XXX
//	events = fired,dismissed
//
//	[log]
//	level = info
//	json = false
//	file = /tmp/clockr.log
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/inovacc/clockr/internal/alarm"
	"github.com/inovacc/clockr/internal/application"
	"github.com/inovacc/clockr/internal/notify"
	"github.com/inovacc/clockr/internal/stopwatch"
	"github.com/inovacc/clockr/internal/tabs"
	"gopkg.in/ini.v1"
)

// UI controls the initial layout.
type UI struct {
	// Tab is the pane shown at startup
	Tab string `ini:"tab"`
}

// Timer configures the stopwatch and lap timer.
type Timer struct {
	// Granularity is the logical tick of the elapsed counter
	Granularity time.Duration `ini:"granularity"`

	// SharedCounter makes both timer views drive one counter
	SharedCounter bool `ini:"shared_counter"`
}

// Alarm configures the alarm scheduler.
type Alarm struct {
	// RingPolicy is "rearm" or "disarm"
	RingPolicy string `ini:"ring_policy"`

	// CheckInterval is the period of the backstop check
	CheckInterval time.Duration `ini:"check_interval"`

	// Sound is a WAV or MP3 file; empty rings the terminal bell
	Sound string `ini:"sound"`

	// Mute disables all alarm sound
	Mute bool `ini:"mute"`
}

// Notify configures outbound alarm notifications.
type Notify struct {
	// Webhook receives a JSON POST per alarm event; empty disables it
	Webhook string `ini:"webhook"`

	// Events limits the webhook to these event types
	Events []string `ini:"events" delim:","`
}

// Log configures slog output.
type Log struct {
	Level string `ini:"level"`
	JSON  bool   `ini:"json"`
	File  string `ini:"file"`
}

// Config holds the application configuration
type Config struct {
	UI     UI     `ini:"ui"`
	Timer  Timer  `ini:"timer"`
	Alarm  Alarm  `ini:"alarm"`
	Notify Notify `ini:"notify"`
	Log    Log    `ini:"log"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		UI: UI{Tab: tabs.Stopwatch},
		Timer: Timer{
			Granularity:   stopwatch.DefaultInterval,
			SharedCounter: false,
		},
		Alarm: Alarm{
			RingPolicy:    string(alarm.PolicyRearm),
			CheckInterval: alarm.CheckInterval,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads the default configuration file if it exists. A missing file
// is not an error.
func Load() (Config, error) {
	path, err := application.DefaultConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	return cfg, err
}

// LoadFile reads path on top of the defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	file, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := file.MapTo(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to map config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that cannot be corrected silently.
func (c Config) Validate() error {
	if c.Timer.Granularity <= 0 {
		return fmt.Errorf("timer granularity must be positive, got %s", c.Timer.Granularity)
	}

	if c.Alarm.CheckInterval <= 0 {
		return fmt.Errorf("alarm check interval must be positive, got %s", c.Alarm.CheckInterval)
	}

	if _, err := alarm.ParsePolicy(c.Alarm.RingPolicy); err != nil {
		return err
	}

	if _, err := tabs.Default(c.UI.Tab); err != nil {
		return err
	}

	if c.Notify.Webhook != "" {
		if err := notify.ValidateWebhookURL(c.Notify.Webhook); err != nil {
			return err
		}
	}

	for _, e := range c.Notify.Events {
		switch e {
		case notify.EventArmed, notify.EventFired, notify.EventDismissed, notify.EventCancelled:
		default:
			return fmt.Errorf("unknown notify event %q", e)
		}
	}

	return nil
}
