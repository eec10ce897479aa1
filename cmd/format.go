package cmd

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/inovacc/clockr/internal/stopwatch"
	"github.com/spf13/cobra"
)

// maxMillis is the largest millisecond count a time.Duration can hold.
const maxMillis = math.MaxInt64 / int64(time.Millisecond)

var formatParse bool

var formatCmd = &cobra.Command{
	Use:   "format <milliseconds>...",
	Short: "Convert between milliseconds and HH:MM:SS.cc",
	Long: `Print each elapsed time given in milliseconds as HH:MM:SS.cc, truncated to
hundredths of a second.

With --parse the conversion is reversed: each HH:MM:SS.cc argument is
printed as a number of milliseconds.`,
	Example: `  clockr format 3723450
  clockr format --parse 01:02:03.45`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)

	formatCmd.Flags().BoolVarP(&formatParse, "parse", "p", false, "Parse HH:MM:SS.cc into milliseconds")
}

func runFormat(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	for _, arg := range args {
		if formatParse {
			d, err := stopwatch.ParseElapsed(arg)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(out, d.Milliseconds())

			continue
		}

		ms, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid milliseconds %q: %w", arg, err)
		}

		if ms > maxMillis || ms < -maxMillis {
			return fmt.Errorf("milliseconds %q out of range (max %d)", arg, maxMillis)
		}

		_, _ = fmt.Fprintln(out, stopwatch.Format(time.Duration(ms)*time.Millisecond))
	}

	return nil
}
