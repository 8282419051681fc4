package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agroconsult/painel/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize painel configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the navigation service and generates a painel.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
