package main

import (
	"os"

	"github.com/spf13/cobra"

	_ "time/tzdata" // site timezones resolve without a system zoneinfo
)

// Version is set via ldflags at build time
var Version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "paperblog",
	Short: "paperblog - a minimal, configurable blog engine",
	Long: `paperblog serves a blog whose behaviour is driven by one site record:
author, paging, scheduled post margin, archives, edit links and preview images.`,
	Example: `  # Serve with site.yaml from the working directory
  paperblog serve

  # Import AstroPaper-style markdown posts
  paperblog import src/content/blog

  # Print the effective site record
  paperblog check --config site.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./site.yaml if present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
