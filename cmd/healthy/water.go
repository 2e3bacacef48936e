package healthy

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/reminder"
	"github.com/saadjs/healthy-cli/internal/service"
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Log water and follow hydration pace",
}

var (
	waterDate     string
	waterJSON     bool
	waterInterval time.Duration
)

var waterAddCmd = &cobra.Command{
	Use:   "add <ml>",
	Short: "Log water in ml (e.g. 250 or 500)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ml, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("%w: invalid water amount %q", service.ErrValidation, args[0])
		}
		return withStore(cmd, func(rt *session) error {
			var iso string
			st, err := rt.update(func(st model.State) (model.State, error) {
				d, err := resolveDate(st, waterDate)
				if err != nil {
					return st, err
				}
				iso = d
				return service.AddWater(st, iso, ml, nowFunc())
			})
			if err != nil {
				return err
			}
			day := service.Day(st, iso)
			goal := service.WaterGoal(st.User.Profile)
			fmt.Fprintf(cmd.OutOrStdout(), "Water on %s: %.0f / %.0f ml\n", iso, day.WaterMl, goal)
			return nil
		})
	},
}

var waterStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show water intake and the pace needed to hit the goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			st, err := rt.store.Load()
			if err != nil {
				return err
			}
			iso, err := resolveDate(st, waterDate)
			if err != nil {
				return err
			}
			pace := service.HydrationPace(service.Day(st, iso), service.WaterGoal(st.User.Profile), nowFunc())
			if waterJSON {
				return printJSON(cmd, pace)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Water on %s: %.0f / %.0f ml\n", iso, pace.DrunkMl, pace.GoalMl)
			fmt.Fprintln(cmd.OutOrStdout(), paceLine(pace))
			return nil
		})
	},
}

var waterCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate the hydration reminder once",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			w := reminder.NewWatcher(rt.store, nil, reminder.Config{Now: nowFunc}, rt.log)
			r, err := w.Tick()
			if err != nil {
				return err
			}
			if waterJSON {
				return printJSON(cmd, r)
			}
			if r.Fire {
				fmt.Fprintln(cmd.OutOrStdout(), r.Message)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "No reminder: %s\n", r.Skip)
			return nil
		})
	},
}

var waterWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the hydration reminder loop until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return withStore(cmd, func(rt *session) error {
			notify := func(r service.Reminder) {
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", nowFunc().Format("15:04"), r.Message)
			}
			w := reminder.NewWatcher(rt.store, notify, reminder.Config{Interval: waterInterval, Now: nowFunc}, rt.log)
			fmt.Fprintf(cmd.OutOrStdout(), "Watching hydration every %s (Ctrl+C to stop)\n", waterInterval)
			if err := w.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		})
	},
}

func paceLine(p service.Pace) string {
	switch p.Status {
	case service.PaceRestDay:
		return "Rest day: no hydration pace today"
	case service.PaceGoalMet:
		return "Goal met"
	default:
		return fmt.Sprintf("%.0f ml left: about %.0f ml/h until 22:00", p.RemainingMl, p.MlPerHour)
	}
}

func init() {
	rootCmd.AddCommand(waterCmd)
	waterCmd.AddCommand(waterAddCmd, waterStatusCmd, waterCheckCmd, waterWatchCmd)
	waterAddCmd.Flags().StringVar(&waterDate, "date", "", "Date YYYY-MM-DD (default active date)")
	waterStatusCmd.Flags().StringVar(&waterDate, "date", "", "Date YYYY-MM-DD (default active date)")
	waterStatusCmd.Flags().BoolVar(&waterJSON, "json", false, "Output JSON")
	waterCheckCmd.Flags().BoolVar(&waterJSON, "json", false, "Output JSON")
	waterWatchCmd.Flags().DurationVar(&waterInterval, "interval", reminder.DefaultInterval, "How often to evaluate the reminder")
}
