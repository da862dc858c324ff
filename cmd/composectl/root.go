package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "composectl",
	Short: "composectl loads a compose assembly document and reports what it built",
	Long: `composectl is a small demonstration host for the compose runtime.
It reads a YAML assembly document, applies its overrides and component
directives against a fresh Container, and prints the retained roots.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "f", "assembly.yaml", "path to the assembly document")
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.AddCommand(newLoadCommand())
}

func handleError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "composectl: %v\n", err)
		os.Exit(1)
	}
}
