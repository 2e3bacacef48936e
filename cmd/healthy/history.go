package healthy

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/healthy-cli/internal/service"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Per-day totals, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			st, err := rt.store.Load()
			if err != nil {
				return err
			}
			days := service.History(st, historyLimit)
			if historyJSON {
				return printJSON(cmd, days)
			}
			out := cmd.OutOrStdout()
			if len(days) == 0 {
				fmt.Fprintln(out, "No history yet")
				return nil
			}
			fmt.Fprintln(out, "DATE\tKCAL\tP\tC\tF\tWATER\tENTRIES")
			for _, d := range days {
				rest := ""
				if d.RestDay {
					rest = "\trest"
				}
				fmt.Fprintf(out, "%s\t%.0f\t%.1f\t%.1f\t%.1f\t%.0f\t%d%s\n",
					d.Date, d.Totals.Kcal, d.Totals.ProteinG, d.Totals.CarbsG, d.Totals.FatG, d.WaterMl, d.Entries, rest)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", service.DefaultHistoryLimit, "Maximum days to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output JSON")
}
