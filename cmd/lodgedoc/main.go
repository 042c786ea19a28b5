package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "lodgedoc",
		Short: "Compose lodge documents from region templates and style settings",
	}
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "lodgedoc.yaml", "Path to the lodgedoc YAML config")

	rootCmd.AddCommand(kindsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(regenerateCmd)
	rootCmd.AddCommand(serveCmd)
}
