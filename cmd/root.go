package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/mockweb/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mockweb",
	Short: "Generate template-based static websites from a short description",
	Long: `mockweb turns a one-line description of a website into a ready-to-use
HTML, CSS and JavaScript bundle. It picks one of three built-in templates
by keyword, fills in a title, a tagline and a services section, and can
serve a live preview UI, write the files to disk or answer AI agents over MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
