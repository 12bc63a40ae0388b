package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	authToken string
	apiURL    = "http://localhost:8000"
	output    = "text" // "text" or "json"
)

var rootCmd = &cobra.Command{
	Use:   "videotube",
	Short: "VideoTube CLI - Manage your VideoTube account from the terminal",
	Long: `VideoTube CLI provides command-line access to your VideoTube account.
Inspect your profile, list videos, and manage subscriptions.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if authToken == "" {
			authToken = os.Getenv("VIDEOTUBE_TOKEN")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&authToken, "token", "", "Access token (defaults to VIDEOTUBE_TOKEN env var)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", apiURL, "API server URL")
	rootCmd.PersistentFlags().StringVar(&output, "output", output, "Output format: text or json")

	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(videosCmd)
	rootCmd.AddCommand(subscriptionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
