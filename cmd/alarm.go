package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inovacc/clockr/internal/alarm"
	"github.com/inovacc/clockr/internal/clock"
	"github.com/inovacc/clockr/internal/notify"
	"github.com/spf13/cobra"
)

var alarmRingFor time.Duration

var alarmCmd = &cobra.Command{
	Use:   "alarm HH:MM",
	Short: "Wait for an alarm without the interactive view",
	Long: `Arm an alarm for the next occurrence of HH:MM (today, or tomorrow if that
time has already passed) and wait for it.

When the alarm fires it rings for --ring-for and the command exits.
Ctrl+C or SIGTERM cancels the alarm.`,
	Example: `  clockr alarm 07:30
  clockr alarm 13:00 --sound ~/sounds/gong.wav --ring-for 1m`,
	Args: cobra.ExactArgs(1),
	RunE: runAlarm,
}

func init() {
	rootCmd.AddCommand(alarmCmd)

	alarmCmd.Flags().DurationVar(&alarmRingFor, "ring-for", 30*time.Second, "How long the alarm rings before the command exits")
}

func runAlarm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	player, err := openSound(cfg.Alarm, cmd.OutOrStdout())
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

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return waitForAlarm(ctx, alarmRun{
		clock:         clock.Real(),
		out:           cmd.OutOrStdout(),
		logger:        logger,
		dispatcher:    dispatcher,
		checkInterval: cfg.Alarm.CheckInterval,
		ringFor:       alarmRingFor,
		options:       []alarm.Option{alarm.WithSound(player), alarm.WithPolicy(policy)},
	}, args[0])
}

type alarmRun struct {
	clock         clock.Clock
	out           io.Writer
	logger        *slog.Logger
	dispatcher    *notify.Dispatcher
	checkInterval time.Duration
	ringFor       time.Duration
	options       []alarm.Option
}

// waitForAlarm arms value, waits for the fire and lets the alarm ring for
// run.ringFor. Cancelling ctx before or during the ring cancels the alarm.
func waitForAlarm(ctx context.Context, run alarmRun, value string) error {
	fired := make(chan *notify.Event, 1)
	run.dispatcher.Register(notify.NewSenderFunc("terminal", func(_ context.Context, e *notify.Event) error {
		if e.Type != notify.EventFired {
			return nil
		}

		select {
		case fired <- e:
		default:
		}

		return nil
	}))

	opts := append([]alarm.Option{
		alarm.WithClock(run.clock),
		alarm.WithLogger(run.logger),
		alarm.WithOnChange(run.dispatcher.Observe),
	}, run.options...)

	scheduler := alarm.New(opts...)
	defer scheduler.Cancel()

	st, err := scheduler.Arm(value)
	if err != nil {
		return err
	}

	now := run.clock.Now()
	_, _ = fmt.Fprintf(run.out, "%s (%s, in %s)\n", st.Message, st.Next.Format("Mon 02 Jan"), st.Next.Sub(now).Round(time.Second))

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()

	go func() {
		if err := scheduler.Watch(watchCtx, run.checkInterval); err != nil && !errors.Is(err, context.Canceled) {
			run.logger.Error("alarm check stopped", "error", err)
		}
	}()

	select {
	case <-ctx.Done():
		scheduler.Cancel()
		_, _ = fmt.Fprintln(run.out, "Alarm cancelled")

		return nil

	case e := <-fired:
		_, _ = fmt.Fprintf(run.out, "%s %s\n", e.Status.Message, run.clock.Now().Format("15:04:05"))
	}

	done := make(chan struct{})
	ring := run.clock.AfterFunc(run.ringFor, func() { close(done) })

	select {
	case <-ctx.Done():
		ring.Stop()
	case <-done:
	}

	return nil
}
