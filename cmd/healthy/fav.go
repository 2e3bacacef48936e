package healthy

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/service"
)

var favCmd = &cobra.Command{
	Use:     "fav",
	Aliases: []string{"favorites"},
	Short:   "Manage the favorite meal bank",
}

var (
	favDate string
	favJSON bool
	favYes  bool
)

var favSaveCmd = &cobra.Command{
	Use:   "save <food-id>",
	Short: "Save a logged food entry as a favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			var fav model.FavoriteMeal
			_, err := rt.update(func(st model.State) (model.State, error) {
				iso, err := resolveDate(st, favDate)
				if err != nil {
					return st, err
				}
				food, err := service.FindFood(st, iso, args[0])
				if err != nil {
					return st, err
				}
				next, f := service.SaveFavorite(st, food, newID(), nowFunc())
				fav = f
				return next, nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved favorite %s (%s)\n", fav.Name, fav.ID)
			return nil
		})
	},
}

var favListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorites, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			st, err := rt.store.Load()
			if err != nil {
				return err
			}
			favs := st.User.Favorites
			if favJSON {
				return printJSON(cmd, favs)
			}
			out := cmd.OutOrStdout()
			if len(favs) == 0 {
				fmt.Fprintln(out, "No favorites yet")
				return nil
			}
			fmt.Fprintln(out, "ID\tNAME\tAMOUNT\tKCAL\tP\tC\tF")
			for _, f := range favs {
				fmt.Fprintf(out, "%s\t%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\n",
					f.ID, f.Name, amountLabel(f.Amount, f.AmountUnit, f.AmountText), f.Kcal, f.ProteinG, f.CarbsG, f.FatG)
			}
			return nil
		})
	},
}

var favAddCmd = &cobra.Command{
	Use:   "add <fav-id>",
	Short: "Log a favorite onto the active date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			var (
				entry model.FoodEntry
				iso   string
			)
			_, err := rt.update(func(st model.State) (model.State, error) {
				d, err := resolveDate(st, favDate)
				if err != nil {
					return st, err
				}
				iso = d
				next, e, err := service.AddFavoriteToDay(st, iso, args[0], newID(), nowFunc())
				entry = e
				return next, err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s on %s: %.0f kcal\n", entry.Name, iso, entry.Kcal)
			return nil
		})
	},
}

var favDeleteCmd = &cobra.Command{
	Use:   "delete <fav-id>",
	Short: "Delete a favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			_, err := rt.update(func(st model.State) (model.State, error) {
				return service.DeleteFavorite(st, args[0])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted favorite %s\n", args[0])
			return nil
		})
	},
}

var favClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every favorite",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !favYes {
			return fmt.Errorf("refusing to clear favorites without --yes")
		}
		return withStore(cmd, func(rt *session) error {
			_, err := rt.update(func(st model.State) (model.State, error) {
				return service.ClearFavorites(st), nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared favorites")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(favCmd)
	favCmd.AddCommand(favSaveCmd, favListCmd, favAddCmd, favDeleteCmd, favClearCmd)
	favSaveCmd.Flags().StringVar(&favDate, "date", "", "Date the food was logged on (default active date)")
	favAddCmd.Flags().StringVar(&favDate, "date", "", "Date YYYY-MM-DD (default active date)")
	favListCmd.Flags().BoolVar(&favJSON, "json", false, "Output JSON")
	favClearCmd.Flags().BoolVar(&favYes, "yes", false, "Confirm clearing all favorites")
}
