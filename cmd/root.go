package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "painel",
	Short: "Sector navigation and Power BI link configuration service",
	Long: `Painel serves the per-sector navigation menus of the dashboard portal.
It merges each sector's baseline menu with its persisted overlay (hidden
entries, renamed titles, custom entries) and resolves which Power BI
report link is bound to each navigation slot.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "painel.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
