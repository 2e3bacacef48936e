package healthy

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/healthy-cli/internal/service"
)

var (
	todayDate string
	todayJSON bool
)

type todayView struct {
	service.DaySummary
	Pace   service.Pace        `json:"pace"`
	Weight service.WeightTrend `json:"weight"`
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Dashboard: totals, targets, water pace and weight",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			st, err := rt.store.Load()
			if err != nil {
				return err
			}
			iso, err := resolveDate(st, todayDate)
			if err != nil {
				return err
			}
			now := nowFunc()
			view := todayView{
				DaySummary: service.Summarize(st, iso),
				Pace:       service.HydrationPace(service.Day(st, iso), service.WaterGoal(st.User.Profile), now),
				Weight:     service.ComputeWeightTrend(st.User.Weights, now),
			}
			if todayJSON {
				return printJSON(cmd, view)
			}

			out := cmd.OutOrStdout()
			header := iso
			if st.User.Name != "" {
				header = fmt.Sprintf("%s | %s", st.User.Name, iso)
			}
			fmt.Fprintln(out, header)
			if view.EatingOut {
				fmt.Fprintln(out, "Mode: eating out")
			}
			if view.RestDay {
				fmt.Fprintln(out, "Rest day")
			}
			if !view.HasTarget {
				fmt.Fprintf(out, "Calories: %.0f kcal (no targets; run `healthy profile set`)\n", view.Totals.Kcal)
			} else {
				k := view.Kcal
				fmt.Fprintf(out, "Calories: %.0f / %.0f kcal (%.0f%%) | %.0f left\n", k.Actual, k.Target, k.Pct, k.Remaining)
				if k.Band != nil {
					if view.RestDay {
						fmt.Fprintf(out, "Band: %.0f-%.0f kcal\n", k.Band.Low, k.Band.High)
					} else {
						status := "outside"
						if k.InBand {
							status = "within"
						}
						fmt.Fprintf(out, "Band: %.0f-%.0f kcal (%s)\n", k.Band.Low, k.Band.High, status)
					}
				}
				for _, m := range []struct {
					label string
					axis  service.AxisProgress
				}{{"Protein", view.Protein}, {"Carbs", view.Carbs}, {"Fat", view.Fat}} {
					fmt.Fprintf(out, "%s: %.1f / %.0f g (%.0f%%)\n", m.label, m.axis.Actual, m.axis.Target, m.axis.Pct)
				}
			}
			fmt.Fprintf(out, "Fiber: %.1f g\n", view.Totals.FiberG)
			fmt.Fprintf(out, "Water: %.0f / %.0f ml (%.0f%%)\n", view.Water.Actual, view.Water.Target, view.Water.Pct)
			fmt.Fprintln(out, paceLine(view.Pace))
			printWeightTrend(cmd, view.Weight)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default active date)")
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Output JSON")
}
