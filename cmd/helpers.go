package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/inovacc/clockr/internal/config"
	"github.com/inovacc/clockr/internal/notify"
	"github.com/inovacc/clockr/internal/sound"
	"github.com/inovacc/clockr/internal/sound/beepplayer"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// addSharedFlags registers the flags every command understands. Each one
// overrides the matching key of the configuration file when set.
func addSharedFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Configuration file (default: <user config dir>/clockr/clockr.ini)")
	fs.String("sound", "", "WAV or MP3 file played when the alarm fires (default: terminal bell)")
	fs.Bool("mute", false, "Never play a sound")
	fs.String("ring-policy", "", "What a fired alarm does next: rearm (same time tomorrow) or disarm")
	fs.Duration("check-interval", 0, "Period of the alarm backstop check")
	fs.Duration("granularity", 0, "Timer tick granularity")
	fs.String("webhook", "", "POST alarm events as JSON to this URL")
	fs.String("log-file", "", "Write logs to this file")
	fs.String("log-level", "", "Log level (debug, info, warn, error)")
	fs.Bool("log-json", false, "Write logs as JSON")
}

// loadConfig reads the configuration file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	fs := cmd.Flags()

	var (
		cfg config.Config
		err error
	)

	if path, _ := fs.GetString("config"); path != "" {
		path, err = expandPath(path)
		if err != nil {
			return cfg, err
		}

		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}

	if err != nil {
		return cfg, err
	}

	applyFlags(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid flags: %w", err)
	}

	return cfg, nil
}

func applyFlags(cfg *config.Config, fs *pflag.FlagSet) {
	if fs.Changed("tab") {
		cfg.UI.Tab, _ = fs.GetString("tab")
	}

	if fs.Changed("shared-counter") {
		cfg.Timer.SharedCounter, _ = fs.GetBool("shared-counter")
	}

	if fs.Changed("granularity") {
		cfg.Timer.Granularity, _ = fs.GetDuration("granularity")
	}

	if fs.Changed("sound") {
		cfg.Alarm.Sound, _ = fs.GetString("sound")
	}

	if fs.Changed("mute") {
		cfg.Alarm.Mute, _ = fs.GetBool("mute")
	}

	if fs.Changed("ring-policy") {
		cfg.Alarm.RingPolicy, _ = fs.GetString("ring-policy")
	}

	if fs.Changed("check-interval") {
		cfg.Alarm.CheckInterval, _ = fs.GetDuration("check-interval")
	}

	if fs.Changed("webhook") {
		cfg.Notify.Webhook, _ = fs.GetString("webhook")
	}

	if fs.Changed("log-file") {
		cfg.Log.File, _ = fs.GetString("log-file")
	}

	if fs.Changed("log-level") {
		cfg.Log.Level, _ = fs.GetString("log-level")
	}

	if fs.Changed("log-json") {
		cfg.Log.JSON, _ = fs.GetBool("log-json")
	}
}

// newLogger builds the slog logger described by cfg. Without a log file it
// writes to fallback, or nowhere when fallback is nil.
func newLogger(cfg config.Log, fallback io.Writer) (*slog.Logger, func(), error) {
	var level slog.Level

	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}

	w := fallback
	if w == nil {
		w = io.Discard
	}

	closer := func() {}

	if cfg.File != "" {
		path, err := expandPath(cfg.File)
		if err != nil {
			return nil, nil, err
		}

		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}

		w = f
		closer = func() { _ = f.Close() }
	}

	opts := &slog.HandlerOptions{Level: level}

	var logger *slog.Logger
	if cfg.JSON {
		logger = slog.New(slog.NewJSONHandler(w, opts))
	} else {
		logger = slog.New(slog.NewTextHandler(w, opts))
	}

	return logger, closer, nil
}

// openSound picks the alarm sound: nothing when muted, the configured file,
// or the terminal bell written to bell.
func openSound(cfg config.Alarm, bell io.Writer) (sound.Player, error) {
	if cfg.Mute {
		return sound.Nop{}, nil
	}

	if cfg.Sound == "" {
		return sound.NewBell(bell), nil
	}

	path, err := expandPath(cfg.Sound)
	if err != nil {
		return nil, err
	}

	return beepplayer.Open(path)
}

// newDispatcher builds the alarm event dispatcher with the configured
// webhook, if any.
func newDispatcher(cfg config.Notify, logger *slog.Logger) (*notify.Dispatcher, error) {
	d := notify.NewDispatcher(true, logger)

	if cfg.Webhook == "" {
		return d, nil
	}

	var opts []notify.WebhookOption
	if len(cfg.Events) > 0 {
		opts = append(opts, notify.WithEvents(cfg.Events...))
	}

	webhook, err := notify.NewWebhookSender(cfg.Webhook, opts...)
	if err != nil {
		return nil, err
	}

	d.Register(webhook)

	return d, nil
}

// expandPath expands ~ to the user's home directory and returns an absolute path
func expandPath(path string) (string, error) {
	if len(path) == 0 {
		return "", fmt.Errorf("path is empty")
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}

		path = filepath.Join(home, path[1:])
	}

	// Make path absolute
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	return absPath, nil
}
