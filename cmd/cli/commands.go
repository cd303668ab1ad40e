package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	syncAll   bool
	syncLimit int
)

func init() {
	syncCmd.Flags().BoolVar(&syncAll, "all", false, "Sync every tracked tournament")
	syncCmd.Flags().IntVar(&syncLimit, "limit", 0, "Cap the number of tournaments synced")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(tournamentsCmd)
	rootCmd.AddCommand(leadersCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync [tournamentID]",
	Short: "Trigger a tournament sync batch, or sync one tournament",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return performPostRequest("/sync/" + url.PathEscape(args[0]))
		}

		endpoint := "/sync"
		params := url.Values{}
		if syncAll {
			params.Set("all", "true")
		}
		if syncLimit > 0 {
			params.Set("limit", fmt.Sprintf("%d", syncLimit))
		}
		if len(params) > 0 {
			endpoint += "?" + params.Encode()
		}
		return performPostRequest(endpoint)
	},
}

var tournamentsCmd = &cobra.Command{
	Use:   "tournaments",
	Short: "List the tracked circuit tournaments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/tournaments")
	},
}

var leadersCmd = &cobra.Command{
	Use:   "leaders",
	Short: "Show the leader tier list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaders")
	},
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the recognized competitive formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/formats")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Show the player leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	req, err := http.NewRequest(http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if secret != "" {
		req.Header.Set("Authorization", "Bearer "+secret)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
