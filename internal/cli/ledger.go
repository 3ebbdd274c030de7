package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iniyantalkies/milkdiary/internal/app/ledger"
)

func init() {
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(calendarCmd)

	markCmd.Flags().String("not", "", "Packets not supplied that day")
	markCmd.Flags().String("extra", "", "Extra packets purchased that day")
}

// ─── mark ───────────────────────────────────────────────────────────────────

var markCmd = &cobra.Command{
	Use:   "mark DATE",
	Short: "Record a day's exception quantities",
	Long: `Record a day's exception quantities. DATE is YYYY-MM-DD. Pass --not
and/or --extra; a flag that is given but not a number resets that
quantity to 0. The other quantity of the day is left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runMark,
}

func runMark(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("not") && !cmd.Flags().Changed("extra") {
		return fmt.Errorf("nothing to update: pass --not and/or --extra")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireUnlocked(); err != nil {
		return err
	}

	date := args[0]
	for _, kind := range []ledger.Kind{ledger.KindNot, ledger.KindExtra} {
		if !cmd.Flags().Changed(string(kind)) {
			continue
		}
		raw, _ := cmd.Flags().GetString(string(kind))
		entry, err := a.ledger.SetException(date, kind, parseQty(raw))
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%s: not=%d extra=%d\n", date, entry.Not, entry.Extra)
	}
	return nil
}

// parseQty coerces non-numeric input to 0, like the day entry inputs.
func parseQty(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// ─── calendar ───────────────────────────────────────────────────────────────

var calendarCmd = &cobra.Command{
	Use:   "calendar [YYYY-MM]",
	Short: "Show the month calendar with exception markers",
	Long: `Show the month calendar. Days are marked with a letter:
N = not supplied, E = extra purchased, B = both.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCalendar,
}

func runCalendar(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireUnlocked(); err != nil {
		return err
	}

	at := time.Now()
	if len(args) == 1 {
		at, err = time.Parse("2006-01", args[0])
		if err != nil {
			return fmt.Errorf("month must be YYYY-MM, got %q", args[0])
		}
	}

	cells, err := a.ledger.MonthGrid(at.Year(), at.Month())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%s %d\n", at.Month(), at.Year())
	fmt.Fprintln(os.Stdout, "  S   M   T   W   T   F   S")
	for i, c := range cells {
		if c.Day == 0 {
			fmt.Fprint(os.Stdout, "    ")
		} else {
			fmt.Fprintf(os.Stdout, "%3d%s", c.Day, statusMarker(c.Status))
		}
		if (i+1)%7 == 0 {
			fmt.Fprintln(os.Stdout)
		}
	}
	if len(cells)%7 != 0 {
		fmt.Fprintln(os.Stdout)
	}
	return nil
}

func statusMarker(status string) string {
	switch status {
	case "not_supplied":
		return "N"
	case "extra":
		return "E"
	case "both":
		return "B"
	default:
		return " "
	}
}
