package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host        string
	encounterID string
)

var rootCmd = &cobra.Command{
	Use:   "tt-cli",
	Short: "A CLI to drive a table tennis encounter",
	Long: `A command-line interface for making requests to the various endpoints
of the tt-encounter server: preparing encounters, scoring matches and
reading the tally.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&encounterID, "encounter", "", "Encounter id, the current encounter when empty")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
