// Command idpnet generates refugee-migration scenarios, runs the
// simulation and serves its networks over HTTP.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		envPath string
	)
	rootCmd := &cobra.Command{
		Use:          "idpnet",
		Short:        "Refugee migration over interaction and road networks",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", ".env", "dotenv file with IDPNET_* overrides")

	app := &app{cfgPath: &cfgPath, envPath: &envPath}
	rootCmd.AddCommand(app.simulateCmd())
	rootCmd.AddCommand(app.serveCmd())
	rootCmd.AddCommand(app.tableCmd())
	rootCmd.AddCommand(app.scenarioCmd())
	rootCmd.AddCommand(app.cacheCmd())

	return rootCmd
}
