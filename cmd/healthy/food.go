package healthy

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/healthy-cli/internal/estimate"
	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/service"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Log, list and estimate food entries",
}

var (
	foodName       string
	foodAmount     float64
	foodUnit       string
	foodAmountText string
	foodKcal       float64
	foodProtein    float64
	foodCarbs      float64
	foodFat        float64
	foodFiber      float64
	foodPhoto      string
	foodPhotoNotes string
	foodDate       string
	foodJSON       bool
	foodNoLookup   bool
)

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a food entry; blank kcal/macros are estimated when possible",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.FoodInput{
			Name:       foodName,
			Amount:     foodAmount,
			AmountUnit: foodUnit,
			AmountText: foodAmountText,
			Kcal:       foodKcal,
			ProteinG:   foodProtein,
			CarbsG:     foodCarbs,
			FatG:       foodFat,
			FiberG:     foodFiber,
			PhotoNotes: foodPhotoNotes,
		}
		if strings.TrimSpace(foodPhoto) != "" {
			dataURL, err := photoDataURL(foodPhoto)
			if err != nil {
				return err
			}
			in.PhotoDataURL = dataURL
		}
		return withStore(cmd, func(rt *session) error {
			st, err := rt.store.Load()
			if err != nil {
				return err
			}
			iso, err := resolveDate(st, foodDate)
			if err != nil {
				return err
			}
			if in.NeedsEstimate() && !foodNoLookup {
				est, err := rt.estimator()
				if err != nil {
					return err
				}
				res := est.Estimate(cmd.Context(), estimate.Request{
					Name:        in.Name,
					Amount:      in.Amount,
					Unit:        in.AmountUnit,
					AllowOnline: st.Settings.Lookup.OpenFoodFacts,
				})
				if res.Found && !foodJSON {
					fmt.Fprintf(cmd.OutOrStdout(), "Estimated from %s\n", res.Estimate.Source)
				}
				in = service.ApplyEstimate(in, res)
			}

			var entry model.FoodEntry
			_, err = rt.update(func(st model.State) (model.State, error) {
				next, e, err := service.AddFood(st, iso, in, newID(), nowFunc())
				entry = e
				return next, err
			})
			if err != nil {
				return err
			}
			if foodJSON {
				return printJSON(cmd, entry)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) on %s: %.0f kcal | P %.1fg C %.1fg F %.1fg\n",
				entry.Name, amountLabel(entry.Amount, entry.AmountUnit, entry.AmountText), iso,
				entry.Kcal, entry.ProteinG, entry.CarbsG, entry.FatG)
			fmt.Fprintf(cmd.OutOrStdout(), "id: %s\n", entry.ID)
			return nil
		})
	},
}

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the day's food entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			st, err := rt.store.Load()
			if err != nil {
				return err
			}
			iso, err := resolveDate(st, foodDate)
			if err != nil {
				return err
			}
			foods := service.FoodsNewestFirst(service.Day(st, iso))
			if foodJSON {
				return printJSON(cmd, foods)
			}
			out := cmd.OutOrStdout()
			if len(foods) == 0 {
				fmt.Fprintf(out, "No food logged on %s\n", iso)
				return nil
			}
			fmt.Fprintln(out, "ID\tTIME\tNAME\tAMOUNT\tKCAL\tP\tC\tF\tSOURCE")
			for _, f := range foods {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\t%s\n",
					f.ID, time.UnixMilli(f.Ts).Format("15:04"), f.Name,
					amountLabel(f.Amount, f.AmountUnit, f.AmountText),
					f.Kcal, f.ProteinG, f.CarbsG, f.FatG, f.Source)
			}
			return nil
		})
	},
}

var foodShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one food entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			st, err := rt.store.Load()
			if err != nil {
				return err
			}
			iso, err := resolveDate(st, foodDate)
			if err != nil {
				return err
			}
			f, err := service.FindFood(st, iso, args[0])
			if err != nil {
				return err
			}
			if foodJSON {
				return printJSON(cmd, f)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", f.Name, amountLabel(f.Amount, f.AmountUnit, f.AmountText))
			fmt.Fprintf(out, "kcal=%.0f protein=%.1f carbs=%.1f fat=%.1f fiber=%.1f\n", f.Kcal, f.ProteinG, f.CarbsG, f.FatG, f.FiberG)
			fmt.Fprintf(out, "source=%s logged=%s\n", f.Source, time.UnixMilli(f.Ts).Format(time.RFC3339))
			if f.PhotoDataURL != "" {
				fmt.Fprintf(out, "photo: %d bytes attached\n", len(f.PhotoDataURL))
			}
			if f.PhotoNotes != "" {
				fmt.Fprintf(out, "notes: %s\n", f.PhotoNotes)
			}
			return nil
		})
	},
}

var foodDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a food entry from the day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			var iso string
			_, err := rt.update(func(st model.State) (model.State, error) {
				d, err := resolveDate(st, foodDate)
				if err != nil {
					return st, err
				}
				iso = d
				return service.DeleteFood(st, iso, args[0])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s from %s\n", args[0], iso)
			return nil
		})
	},
}

var foodEstimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate kcal and macros without logging",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(foodName) == "" {
			return fmt.Errorf("--name is required")
		}
		return withStore(cmd, func(rt *session) error {
			st, err := rt.store.Load()
			if err != nil {
				return err
			}
			est, err := rt.estimator()
			if err != nil {
				return err
			}
			res := est.Estimate(cmd.Context(), estimate.Request{
				Name:        foodName,
				Amount:      foodAmount,
				Unit:        foodUnit,
				AllowOnline: st.Settings.Lookup.OpenFoodFacts,
			})
			if foodJSON {
				return printJSON(cmd, res)
			}
			if !res.Found {
				fmt.Fprintln(cmd.OutOrStdout(), "No estimate found; enter kcal and macros manually")
				return nil
			}
			e := res.Estimate
			fmt.Fprintf(cmd.OutOrStdout(), "%.0f kcal | P %.1fg C %.1fg F %.1fg (%s)\n", e.Kcal, e.ProteinG, e.CarbsG, e.FatG, e.Source)
			return nil
		})
	},
}

// photoDataURL reads an image file into a data URL.
func photoDataURL(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}
	mime := http.DetectContentType(b)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: photo %s is not an image (%s)", service.ErrValidation, path, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodAddCmd, foodListCmd, foodShowCmd, foodDeleteCmd, foodEstimateCmd)

	for _, c := range []*cobra.Command{foodAddCmd, foodEstimateCmd} {
		c.Flags().StringVar(&foodName, "name", "", "Food name")
		c.Flags().Float64Var(&foodAmount, "amount", 0, "Amount in grams (with --unit g)")
		c.Flags().StringVar(&foodUnit, "unit", model.UnitGrams, "Amount unit: g|custom")
	}
	foodAddCmd.Flags().StringVar(&foodAmountText, "amount-text", "", "Free-text amount for --unit custom (e.g. \"2 pitas\")")
	foodAddCmd.Flags().Float64Var(&foodKcal, "kcal", 0, "Calories (leave blank to estimate)")
	foodAddCmd.Flags().Float64Var(&foodProtein, "protein", 0, "Protein grams")
	foodAddCmd.Flags().Float64Var(&foodCarbs, "carbs", 0, "Carb grams")
	foodAddCmd.Flags().Float64Var(&foodFat, "fat", 0, "Fat grams")
	foodAddCmd.Flags().Float64Var(&foodFiber, "fiber", 0, "Fiber grams")
	foodAddCmd.Flags().StringVar(&foodPhoto, "photo", "", "Path to a photo to attach")
	foodAddCmd.Flags().StringVar(&foodPhotoNotes, "photo-notes", "", "Notes about the photo")
	foodAddCmd.Flags().BoolVar(&foodNoLookup, "no-estimate", false, "Skip estimation of blank values")

	for _, c := range []*cobra.Command{foodAddCmd, foodListCmd, foodShowCmd, foodDeleteCmd} {
		c.Flags().StringVar(&foodDate, "date", "", "Date YYYY-MM-DD (default active date)")
	}
	for _, c := range []*cobra.Command{foodAddCmd, foodListCmd, foodShowCmd, foodEstimateCmd} {
		c.Flags().BoolVar(&foodJSON, "json", false, "Output JSON")
	}
}
