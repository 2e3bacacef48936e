package healthy

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/service"
)

var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Toggle eating-out and rest-day modes",
}

var modeDate string

var modeEatingOutCmd = &cobra.Command{
	Use:   "eating-out",
	Short: "Toggle eating-out mode (widens the kcal band to ±15%)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			st, err := rt.update(func(st model.State) (model.State, error) {
				return service.ToggleEatingOut(st), nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Eating-out mode: %s\n", onOff(st.User.Modes.EatingOut))
			return nil
		})
	},
}

var modeRestDayCmd = &cobra.Command{
	Use:   "rest-day",
	Short: "Toggle rest day for the active date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			var iso string
			st, err := rt.update(func(st model.State) (model.State, error) {
				d, err := resolveDate(st, modeDate)
				if err != nil {
					return st, err
				}
				iso = d
				return service.ToggleRestDay(st, iso)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rest day on %s: %s\n", iso, onOff(service.Day(st, iso).RestDay))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(modeCmd)
	modeCmd.AddCommand(modeEatingOutCmd, modeRestDayCmd)
	modeRestDayCmd.Flags().StringVar(&modeDate, "date", "", "Date YYYY-MM-DD (default active date)")
}
