package healthy

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/healthy-cli/internal/app"
	"github.com/saadjs/healthy-cli/internal/service"
)

var (
	exportOut string
	importIn  string
	resetYes  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the whole state document to a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			st, err := rt.store.Load()
			if err != nil {
				return err
			}
			out := strings.TrimSpace(exportOut)
			if out == "" {
				out = app.BackupFileName(nowFunc())
			}
			info, err := service.WriteExport(st, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d bytes, sha256 %s)\n", info.Path, info.SizeBytes, info.Checksum)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the state document with an exported file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--in is required")
		}
		st, err := service.ReadImport(importIn)
		if err != nil {
			return err
		}
		return withStore(cmd, func(rt *session) error {
			if err := rt.store.Save(st); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (%d days, %d favorites, %d weigh-ins)\n",
				importIn, len(st.Days), len(st.User.Favorites), len(st.User.Weights))
			return nil
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all local data",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("refusing to reset without --yes")
		}
		return withStore(cmd, func(rt *session) error {
			if err := rt.store.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All local data deleted")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd, resetCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output path (default healthy-lifestyle-backup-<date>.json)")
	importCmd.Flags().StringVar(&importIn, "in", "", "Exported JSON file")
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Confirm deleting all data")
}
