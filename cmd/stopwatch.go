package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/inovacc/clockr/internal/clock"
	"github.com/inovacc/clockr/internal/stopwatch"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var stopwatchCmd = &cobra.Command{
	Use:     "stopwatch",
	Aliases: []string{"laps"},
	Short:   "Run a lap timer on standard input",
	Long: `Start a lap timer immediately and read commands from standard input.

  Enter      record a lap
  q, Enter   stop and print the total

End of input, Ctrl+C and SIGTERM also stop the timer.`,
	Args: cobra.NoArgs,
	RunE: runStopwatch,
}

func init() {
	rootCmd.AddCommand(stopwatchCmd)
}

func runStopwatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := stopwatch.New(stopwatch.WithInterval(cfg.Timer.Granularity))

	return runLapTimer(ctx, lapTimerIO{
		clock:  clock.Real(),
		in:     cmd.InOrStdin(),
		out:    cmd.OutOrStdout(),
		live:   isTerminal(cmd.OutOrStdout()),
		logger: logger,
	}, engine)
}

type lapTimerIO struct {
	clock  clock.Clock
	in     io.Reader
	out    io.Writer
	live   bool
	logger *slog.Logger
}

// runLapTimer drives engine from a ticker until the input asks to stop, ends,
// or ctx is done. Laps and the final total go to out; with live set the
// running time is redrawn in place on every tick.
func runLapTimer(ctx context.Context, rw lapTimerIO, engine *stopwatch.Engine) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(rw.in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()

	gen := engine.StartStop()

	ticker := rw.clock.NewTicker(engine.Interval())
	defer ticker.Stop()

	rw.logger.Debug("lap timer started", "interval", engine.Interval())

	redraw := func() {
		if rw.live {
			_, _ = fmt.Fprintf(rw.out, "\r%s", engine.Display())
		}
	}

	redraw()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop

		case <-ticker.C():
			engine.Tick(gen)
			redraw()

		case line, ok := <-lines:
			if !ok || strings.EqualFold(line, "q") {
				break loop
			}

			lap, _ := engine.Lap()
			if rw.live {
				_, _ = fmt.Fprint(rw.out, "\r")
			}

			_, _ = fmt.Fprintf(rw.out, "Lap %d  %s\n", lap.Index, stopwatch.Format(lap.Elapsed))
			redraw()
		}
	}

	engine.StartStop()

	if rw.live {
		_, _ = fmt.Fprint(rw.out, "\r")
	}

	_, _ = fmt.Fprintf(rw.out, "Total  %s (%d laps)\n", engine.Display(), len(engine.Laps()))

	rw.logger.Debug("lap timer stopped", "elapsed", engine.Elapsed(), "laps", len(engine.Laps()))

	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}
