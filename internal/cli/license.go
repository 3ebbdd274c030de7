package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iniyantalkies/milkdiary/internal/domain"
)

func init() {
	rootCmd.AddCommand(unlockCmd)
	rootCmd.AddCommand(requestKeyCmd)
	rootCmd.AddCommand(statusCmd)
}

// ─── unlock ─────────────────────────────────────────────────────────────────

var unlockCmd = &cobra.Command{
	Use:   "unlock KEY",
	Short: "Unlock the diary with a license key",
	Long: `Unlock the diary with a license key. A key binds to the first
device that uses it and cannot be shared; re-entering your own key
refreshes the expiry.`,
	Args: cobra.ExactArgs(1),
	RunE: runUnlock,
}

func runUnlock(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	lic, err := a.license.Unlock(args[0])
	switch {
	case errors.Is(err, domain.ErrInvalidKey):
		return fmt.Errorf("invalid password or license key — contact the admin (milkdiary request-key)")
	case errors.Is(err, domain.ErrKeyAlreadyBound):
		return fmt.Errorf("this password has already been used on another device and cannot be shared")
	case err != nil:
		return err
	}

	fmt.Fprintf(os.Stdout, "Unlocked: %s license, active until %s\n",
		lic.Tier, domain.DisplayDate(lic.ExpiresAt))
	return nil
}

// ─── request-key ────────────────────────────────────────────────────────────

var requestKeyCmd = &cobra.Command{
	Use:   "request-key",
	Short: "Print a WhatsApp link to request a license key",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		link, err := a.license.RequestLink()
		if err != nil {
			return err
		}
		id, _ := a.license.DeviceID()
		fmt.Fprintf(os.Stdout, "Device ID: %s\n", id)
		fmt.Fprintf(os.Stdout, "Open this link to message the admin:\n%s\n", link)
		return nil
	},
}

// ─── status ─────────────────────────────────────────────────────────────────

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show device id and license state",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		id, err := a.license.DeviceID()
		if err != nil {
			return err
		}
		lic, unlocked, err := a.license.Status()
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Device ID: %s\n", id)
		if unlocked {
			fmt.Fprintf(os.Stdout, "License:   %s, active until %s\n",
				lic.Tier, domain.DisplayDate(lic.ExpiresAt))
		} else {
			fmt.Fprintln(os.Stdout, "License:   locked (no valid license on this device)")
		}
		return nil
	},
}
