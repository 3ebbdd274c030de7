package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/iniyantalkies/milkdiary/internal/app/bill"
	"github.com/iniyantalkies/milkdiary/internal/infra/whatsapp"
)

func init() {
	rootCmd.AddCommand(billCmd)
	billCmd.AddCommand(billMonthCmd)
	billCmd.AddCommand(billRangeCmd)

	for _, c := range []*cobra.Command{billMonthCmd, billRangeCmd} {
		c.Flags().Bool("send", false, "Also print the WhatsApp link to the milkman")
		c.Flags().Bool("save", false, "Also save the bill to a text file")
	}
}

var billCmd = &cobra.Command{
	Use:   "bill",
	Short: "Generate a milk bill",
}

// ─── bill month ─────────────────────────────────────────────────────────────

var billMonthCmd = &cobra.Command{
	Use:   "month [YYYY-MM]",
	Short: "Bill a full calendar month (default: current month)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBillMonth,
}

func runBillMonth(cmd *cobra.Command, args []string) error {
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

	st, err := a.settings.Load()
	if err != nil {
		return err
	}
	led, err := a.ledger.All()
	if err != nil {
		return err
	}
	b, err := bill.BuildMonth(at.Year(), at.Month(), st, led)
	if err != nil {
		return err
	}
	return outputBill(cmd, b, st.Milkman)
}

// ─── bill range ─────────────────────────────────────────────────────────────

var billRangeCmd = &cobra.Command{
	Use:   "range FROM TO",
	Short: "Bill a custom date range (YYYY-MM-DD, inclusive)",
	Args:  cobra.ExactArgs(2),
	RunE:  runBillRange,
}

func runBillRange(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireUnlocked(); err != nil {
		return err
	}

	st, err := a.settings.Load()
	if err != nil {
		return err
	}
	led, err := a.ledger.All()
	if err != nil {
		return err
	}
	b, err := bill.BuildRange(args[0], args[1], st, led)
	if err != nil {
		return err
	}
	return outputBill(cmd, b, st.Milkman)
}

// ─── output ─────────────────────────────────────────────────────────────────

func outputBill(cmd *cobra.Command, b *bill.Bill, milkman string) error {
	fmt.Fprintln(os.Stdout, b.Text)

	if send, _ := cmd.Flags().GetBool("send"); send {
		if milkman == "" {
			return fmt.Errorf("no milkman number configured — run 'milkdiary settings set --milkman NUMBER'")
		}
		fmt.Fprintf(os.Stdout, "\nSend to milkman:\n%s\n", whatsapp.BillDelivery(milkman, b.Text))
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		name := fmt.Sprintf("bill-%s-%s.txt",
			b.End.Format("200601"), uuid.NewString()[:8])
		if err := os.WriteFile(name, []byte(b.Text+"\n"), 0644); err != nil {
			return fmt.Errorf("save bill: %w", err)
		}
		fmt.Fprintf(os.Stdout, "\nSaved %s\n", name)
	}
	return nil
}
