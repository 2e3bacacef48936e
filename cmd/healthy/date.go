package healthy

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/service"
)

var dateCmd = &cobra.Command{
	Use:   "date",
	Short: "Choose which day commands operate on",
}

var dateSetCmd = &cobra.Command{
	Use:   "set <YYYY-MM-DD|today>",
	Short: "Set the active date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		iso := strings.TrimSpace(args[0])
		if iso == "today" {
			iso = service.DateISO(nowFunc())
		}
		return withStore(cmd, func(rt *session) error {
			st, err := rt.update(func(st model.State) (model.State, error) {
				return service.SetActiveDate(st, iso)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active date: %s\n", st.ActiveDate)
			return nil
		})
	},
}

var dateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			st, err := rt.store.Load()
			if err != nil {
				return err
			}
			iso := service.ActiveDate(st, nowFunc())
			suffix := ""
			if iso == service.DateISO(nowFunc()) {
				suffix = " (today)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active date: %s%s\n", iso, suffix)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(dateCmd)
	dateCmd.AddCommand(dateSetCmd, dateShowCmd)
}
