package cmd

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/clockr/internal/alarm"
	"github.com/inovacc/clockr/internal/application"
	"github.com/inovacc/clockr/internal/cli"
	"github.com/inovacc/clockr/internal/stopwatch"
	"github.com/inovacc/clockr/internal/tabs"
	"github.com/inovacc/clockr/internal/version"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:     application.AppName,
	Short:   "A terminal stopwatch, lap timer and alarm clock",
	Version: version.Version,
	Long: `Clockr is a clock utility for the terminal. It shows a stopwatch, a lap
timer and an alarm in switchable tabs, with a live clock that doubles as
a backstop for the alarm.

Run without a subcommand to open the interactive view. Use 'clockr alarm'
and 'clockr stopwatch' when no interactive terminal is available.`,
	SilenceUsage: true,
	RunE:         runRoot,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	addSharedFlags(rootCmd.PersistentFlags())

	rootCmd.Flags().String("tab", tabs.Stopwatch, "Pane shown at startup (stopwatch, laptimer, alarm)")
	rootCmd.Flags().Bool("shared-counter", false, "Drive the stopwatch and lap timer from one counter")
}

func runRoot(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("clockr needs an interactive terminal; use 'clockr alarm' or 'clockr stopwatch' instead")
	}

	// the TUI owns the terminal: logs only go to an explicit file
	logger, closeLog, err := newLogger(cfg.Log, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	player, err := openSound(cfg.Alarm, os.Stdout)
	if err != nil {
		return err
	}
	defer func() { _ = player.Close() }()

	policy, err := alarm.ParsePolicy(cfg.Alarm.RingPolicy)
	if err != nil {
		return err
	}

	dispatcher, err := newDispatcher(cfg.Notify, logger)
	if err != nil {
		return err
	}
	defer dispatcher.Wait()

	relay := &cli.Relay{}
	scheduler := alarm.New(
		alarm.WithSound(player),
		alarm.WithPolicy(policy),
		alarm.WithLogger(logger),
		alarm.WithOnChange(func(st alarm.Status) {
			relay.Forward(st)
			dispatcher.Observe(st)
		}),
	)
	defer scheduler.Cancel()

	tc, err := tabs.Default(cfg.UI.Tab)
	if err != nil {
		return err
	}

	sw, lt := stopwatch.Surfaces(tabs.Stopwatch, tabs.LapTimer, cfg.Timer.SharedCounter,
		stopwatch.WithInterval(cfg.Timer.Granularity))

	m := cli.New(cli.Options{
		Tabs:          tc,
		Stopwatch:     sw,
		LapTimer:      lt,
		Scheduler:     scheduler,
		CheckInterval: cfg.Alarm.CheckInterval,
		Logger:        logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	relay.Attach(p)

	logger.Info("clockr started",
		"tab", cfg.UI.Tab,
		"shared_counter", cfg.Timer.SharedCounter,
		"ring_policy", string(policy),
	)

	_, err = p.Run()

	return err
}
