package healthy

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/service"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage reminder and lookup settings",
}

var (
	settingsReminders string
	settingsQuietFrom int
	settingsQuietTo   int
	settingsLookup    string
)

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update reminder, quiet-hours and online lookup settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.SettingsInput{}
		flags := cmd.Flags()
		if flags.Changed("reminders") {
			v, err := parseOnOff("reminders", settingsReminders)
			if err != nil {
				return err
			}
			in.RemindersEnabled = &v
		}
		if flags.Changed("online-lookup") {
			v, err := parseOnOff("online-lookup", settingsLookup)
			if err != nil {
				return err
			}
			in.OnlineLookup = &v
		}
		if flags.Changed("quiet-from") {
			in.QuietFrom = &settingsQuietFrom
		}
		if flags.Changed("quiet-to") {
			in.QuietTo = &settingsQuietTo
		}
		return withStore(cmd, func(rt *session) error {
			st, err := rt.update(func(st model.State) (model.State, error) {
				return service.UpdateSettings(st, in), nil
			})
			if err != nil {
				return err
			}
			printSettings(cmd, st.Settings)
			return nil
		})
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			st, err := rt.store.Load()
			if err != nil {
				return err
			}
			printSettings(cmd, st.Settings)
			return nil
		})
	},
}

func printSettings(cmd *cobra.Command, s model.Settings) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "reminders=%s\n", onOff(s.SmartWater.Enabled))
	fmt.Fprintf(out, "quiet_hours=%02d:00-%02d:00\n", s.SmartWater.QuietHours.From, s.SmartWater.QuietHours.To)
	fmt.Fprintf(out, "online_lookup=%s\n", onOff(s.Lookup.OpenFoodFacts))
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsSetCmd, settingsGetCmd)
	settingsSetCmd.Flags().StringVar(&settingsReminders, "reminders", "", "Hydration reminders: on|off")
	settingsSetCmd.Flags().IntVar(&settingsQuietFrom, "quiet-from", 22, "Quiet hours start (0-23)")
	settingsSetCmd.Flags().IntVar(&settingsQuietTo, "quiet-to", 7, "Quiet hours end (0-23)")
	settingsSetCmd.Flags().StringVar(&settingsLookup, "online-lookup", "", "Open Food Facts lookup: on|off")
}
