package healthy

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath    string
	debugLogs bool
)

var rootCmd = &cobra.Command{
	Use:   "healthy",
	Short: "healthy tracks food, water and weight from your terminal",
	Long: "healthy is a local-first daily nutrition and hydration tracker. It derives calorie, macro " +
		"and water targets from your body profile and keeps every day's log in a local SQLite file.",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "Enable debug logging on stderr")
}
