package healthy

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/service"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Track weigh-ins and the 28-day trend",
}

var (
	weightValue float64
	weightUnit  string
	weightDate  string
	weightJSON  bool
)

var weightAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a weigh-in (one per date)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			var rec model.WeightRecord
			_, err := rt.update(func(st model.State) (model.State, error) {
				date := weightDate
				if strings.TrimSpace(date) == "" {
					date = "today"
				}
				iso, err := resolveDate(st, date)
				if err != nil {
					return st, err
				}
				next, r, err := service.UpsertWeight(st, service.WeightInput{DateISO: iso, Weight: weightValue, Unit: weightUnit}, nowFunc())
				rec = r
				return next, err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %.1f kg for %s\n", rec.Kg, rec.DateISO)
			return nil
		})
	},
}

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List weigh-ins, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			st, err := rt.store.Load()
			if err != nil {
				return err
			}
			items := service.WeightsNewestFirst(st.User.Weights)
			if weightJSON {
				return printJSON(cmd, items)
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No weigh-ins yet")
				return nil
			}
			fmt.Fprintf(out, "DATE\tWEIGHT(%s)\n", weightUnit)
			for _, w := range items {
				v, err := service.WeightFromKg(w.Kg, weightUnit)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%.1f\n", w.DateISO, v)
			}
			return nil
		})
	},
}

var weightDeleteCmd = &cobra.Command{
	Use:   "delete <YYYY-MM-DD>",
	Short: "Delete the weigh-in for a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			_, err := rt.update(func(st model.State) (model.State, error) {
				return service.DeleteWeight(st, args[0])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted weigh-in for %s\n", args[0])
			return nil
		})
	},
}

var weightTrendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Compare the last 28 days with the 28 days before",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			st, err := rt.store.Load()
			if err != nil {
				return err
			}
			trend := service.ComputeWeightTrend(st.User.Weights, nowFunc())
			if weightJSON {
				return printJSON(cmd, trend)
			}
			printWeightTrend(cmd, trend)
			return nil
		})
	},
}

func printWeightTrend(cmd *cobra.Command, t service.WeightTrend) {
	out := cmd.OutOrStdout()
	if t.Last == nil {
		fmt.Fprintln(out, "Weight: no weigh-ins yet")
		return
	}
	fmt.Fprintf(out, "Weight: last %.1f kg (%s)\n", t.Last.Kg, t.Last.DateISO)
	avg := "-"
	if t.CurrentAvgKg != nil {
		avg = fmt.Sprintf("%.1f kg", *t.CurrentAvgKg)
	}
	fmt.Fprintf(out, "28-day avg: %s | trend %s kg | consistency %.0f%% (%d of 4 weigh-ins)\n",
		avg, service.FormatTrend(t.DiffKg), t.ConsistencyPct, t.RecentCount)
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightAddCmd, weightListCmd, weightDeleteCmd, weightTrendCmd)
	weightAddCmd.Flags().Float64Var(&weightValue, "weight", 0, "Body weight")
	weightAddCmd.Flags().StringVar(&weightDate, "date", "", "Date YYYY-MM-DD (default today)")
	for _, c := range []*cobra.Command{weightAddCmd, weightListCmd} {
		c.Flags().StringVar(&weightUnit, "unit", "kg", "Weight unit: kg|lb")
	}
	for _, c := range []*cobra.Command{weightListCmd, weightTrendCmd} {
		c.Flags().BoolVar(&weightJSON, "json", false, "Output JSON")
	}
}
