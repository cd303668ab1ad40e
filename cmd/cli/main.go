package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host   string
	secret string
)

var rootCmd = &cobra.Command{
	Use:   "chinoize-cli",
	Short: "A CLI to interact with the ChinoizeCupStats server",
	Long: `A command-line interface for making requests to the various endpoints
of the ChinoizeCupStats application.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&secret, "secret", os.Getenv("SYNC_SECRET"), "Bearer secret for the sync endpoints")
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
