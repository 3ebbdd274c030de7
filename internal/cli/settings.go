package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)

	settingsSetCmd.Flags().String("plot", "", "Plot / door number")
	settingsSetCmd.Flags().String("addr", "", "Address")
	settingsSetCmd.Flags().Int("daily-qty", 0, "Daily packets")
	settingsSetCmd.Flags().Float64("rate", 0, "Rate per packet (₹)")
	settingsSetCmd.Flags().Float64("service", 0, "One-time service fee (₹)")
	settingsSetCmd.Flags().String("milkman", "", "Milkman WhatsApp number (without country code)")
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the dairy configuration",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
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
		fmt.Fprintf(os.Stdout, "Plot / door no: %s\n", st.CustPlot)
		fmt.Fprintf(os.Stdout, "Address:        %s\n", st.CustAddr)
		fmt.Fprintf(os.Stdout, "Daily packets:  %d\n", st.DailyQty)
		fmt.Fprintf(os.Stdout, "Rate:           ₹%g per pkt\n", st.Rate)
		fmt.Fprintf(os.Stdout, "Service fee:    ₹%g\n", st.Service)
		fmt.Fprintf(os.Stdout, "Milkman:        %s\n", st.Milkman)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change configuration fields and save",
	Long: `Change configuration fields. Only the flags you pass are changed;
the record is then saved as a whole.`,
	RunE: runSettingsSet,
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
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

	changed := false
	if cmd.Flags().Changed("plot") {
		st.CustPlot, _ = cmd.Flags().GetString("plot")
		changed = true
	}
	if cmd.Flags().Changed("addr") {
		st.CustAddr, _ = cmd.Flags().GetString("addr")
		changed = true
	}
	if cmd.Flags().Changed("daily-qty") {
		st.DailyQty, _ = cmd.Flags().GetInt("daily-qty")
		if st.DailyQty < 0 {
			st.DailyQty = 0
		}
		changed = true
	}
	if cmd.Flags().Changed("rate") {
		st.Rate, _ = cmd.Flags().GetFloat64("rate")
		changed = true
	}
	if cmd.Flags().Changed("service") {
		st.Service, _ = cmd.Flags().GetFloat64("service")
		changed = true
	}
	if cmd.Flags().Changed("milkman") {
		st.Milkman, _ = cmd.Flags().GetString("milkman")
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to change: pass at least one flag")
	}

	if err := a.settings.Save(st); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "Configuration saved.")
	return nil
}
