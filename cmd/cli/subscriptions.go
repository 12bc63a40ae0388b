package main

import (
	"net/http"

	"github.com/spf13/cobra"
)

var subscriptionsCmd = &cobra.Command{
	Use:   "subscriptions",
	Short: "Manage channel subscriptions",
}

var subscriptionsToggleCmd = &cobra.Command{
	Use:   "toggle <channelId>",
	Short: "Subscribe to or unsubscribe from a channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := apiRequest(http.MethodPost, "/api/v1/subscriptions/c/"+args[0], nil)
		if err != nil {
			return err
		}
		return printResult(data)
	},
}

var subscriptionsListCmd = &cobra.Command{
	Use:   "list <subscriberId>",
	Short: "List channels a user subscribes to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := apiRequest(http.MethodGet, "/api/v1/subscriptions/u/"+args[0], nil)
		if err != nil {
			return err
		}
		return printResult(data)
	},
}

func init() {
	subscriptionsCmd.AddCommand(subscriptionsToggleCmd)
	subscriptionsCmd.AddCommand(subscriptionsListCmd)
}
