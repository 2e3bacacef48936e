package healthy

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/healthy-cli/internal/app"
	"github.com/saadjs/healthy-cli/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local healthy database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(rt *session) error {
			_, ok, err := rt.store.Raw()
			if err != nil {
				return err
			}
			if !ok {
				st, err := rt.store.Load()
				if err != nil {
					return err
				}
				if err := rt.store.Save(st); err != nil {
					return err
				}
			}
			purged, err := rt.lookupCache().Purge()
			if err != nil {
				return err
			}
			rt.log.Debug().Int64("rows", purged).Msg("purged expired lookup cache rows")
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized healthy database at %s\n", rt.path)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// resolveDBPath prefers --db, then HEALTHY_DB_PATH, then the user config dir.
func resolveDBPath(cfg *config.Config) (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return app.DefaultDBPath()
}
