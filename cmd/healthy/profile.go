package healthy

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/service"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard <name>",
	Short: "Set your display name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		return withStore(cmd, func(rt *session) error {
			st, err := rt.update(func(st model.State) (model.State, error) {
				return service.SetName(st, name)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Hi %s! Next: healthy profile set --age --gender --height --weight\n", st.User.Name)
			return nil
		})
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your body profile and derived targets",
}

var (
	profileAge      float64
	profileGender   string
	profileHeight   float64
	profileWeight   float64
	profileUnit     string
	profileActivity float64
	profileWaterL   float64
	profileJSON     bool
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Compute targets from age, gender, height and weight",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.ProfileInput{
			Age:             profileAge,
			Gender:          profileGender,
			HeightCm:        profileHeight,
			Weight:          profileWeight,
			WeightUnit:      profileUnit,
			ActivityFactor:  profileActivity,
			WaterGoalLiters: profileWaterL,
		}
		return withStore(cmd, func(rt *session) error {
			var p model.Profile
			_, err := rt.update(func(st model.State) (model.State, error) {
				next, prof, err := service.SetProfile(st, in, nil)
				p = prof
				return next, err
			})
			if err != nil {
				return err
			}
			printProfile(cmd, p)
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show profile and targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			st, err := rt.store.Load()
			if err != nil {
				return err
			}
			p, err := requireProfile(st)
			if err != nil {
				return err
			}
			if profileJSON {
				return printJSON(cmd, p)
			}
			if st.User.Name != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Name: %s\n", st.User.Name)
			}
			printProfile(cmd, *p)
			return nil
		})
	},
}

func printProfile(cmd *cobra.Command, p model.Profile) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Body: %g y | %s | %g cm | %g kg | activity x%g\n", p.Age, p.Gender, p.HeightCm, p.WeightKg, p.ActivityFactor)
	fmt.Fprintf(out, "TDEE: %.0f kcal\n", p.TDEE)
	fmt.Fprintf(out, "Target: %.0f kcal | P %.0fg | C %.0fg | F %.0fg\n", p.KcalTarget, p.MacroTargets.ProteinG, p.MacroTargets.CarbsG, p.MacroTargets.FatG)
	fmt.Fprintf(out, "Water: %.0f ml\n", p.WaterGoalMl)
}

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Edit daily targets by hand",
}

var (
	targetKcal    float64
	targetProtein float64
	targetCarbs   float64
	targetFat     float64
	targetWater   float64
)

var targetsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Override kcal, macro or water targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.TargetsInput{}
		flags := cmd.Flags()
		if flags.Changed("kcal") {
			in.KcalTarget = &targetKcal
		}
		if flags.Changed("protein") {
			in.ProteinG = &targetProtein
		}
		if flags.Changed("carbs") {
			in.CarbsG = &targetCarbs
		}
		if flags.Changed("fat") {
			in.FatG = &targetFat
		}
		if flags.Changed("water") {
			in.WaterGoalMl = &targetWater
		}
		if in == (service.TargetsInput{}) {
			return fmt.Errorf("nothing to update; pass at least one of --kcal --protein --carbs --fat --water")
		}
		return withStore(cmd, func(rt *session) error {
			st, err := rt.update(func(st model.State) (model.State, error) {
				return service.SetTargets(st, in)
			})
			if err != nil {
				return err
			}
			printProfile(cmd, *st.User.Profile)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(targetsCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd)
	targetsCmd.AddCommand(targetsSetCmd)

	profileSetCmd.Flags().Float64Var(&profileAge, "age", 0, "Age in years")
	profileSetCmd.Flags().StringVar(&profileGender, "gender", model.GenderMale, "Gender: male|other")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Body weight")
	profileSetCmd.Flags().StringVar(&profileUnit, "unit", "kg", "Weight unit: kg|lb")
	profileSetCmd.Flags().Float64Var(&profileActivity, "activity", 1.2, "Activity factor (1.2 sedentary to 1.9 very active)")
	profileSetCmd.Flags().Float64Var(&profileWaterL, "water-liters", 0, "Daily water goal in liters (default 35 ml per kg)")
	profileShowCmd.Flags().BoolVar(&profileJSON, "json", false, "Output JSON")

	targetsSetCmd.Flags().Float64Var(&targetKcal, "kcal", 0, "Daily kcal target (min 800)")
	targetsSetCmd.Flags().Float64Var(&targetProtein, "protein", 0, "Protein target (g)")
	targetsSetCmd.Flags().Float64Var(&targetCarbs, "carbs", 0, "Carbs target (g)")
	targetsSetCmd.Flags().Float64Var(&targetFat, "fat", 0, "Fat target (g)")
	targetsSetCmd.Flags().Float64Var(&targetWater, "water", 0, "Water goal (ml, min 500)")
}
