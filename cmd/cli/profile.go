package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect and update your profile",
}

var profileGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the signed-in user's profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := apiRequest(http.MethodGet, "/api/v1/users/current-user", nil)
		if err != nil {
			return err
		}
		return printResult(data)
	},
}

var profileChannelCmd = &cobra.Command{
	Use:   "channel <username>",
	Short: "Show a channel's public profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := apiRequest(http.MethodGet, "/api/v1/users/c/"+args[0], nil)
		if err != nil {
			return err
		}
		return printResult(data)
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update fullName or email",
	RunE: func(cmd *cobra.Command, args []string) error {
		fullName, _ := cmd.Flags().GetString("full-name")
		email, _ := cmd.Flags().GetString("email")
		if fullName == "" && email == "" {
			return fmt.Errorf("provide --full-name or --email")
		}

		payload := map[string]string{}
		if fullName != "" {
			payload["fullName"] = fullName
		}
		if email != "" {
			payload["email"] = email
		}

		data, err := apiRequest(http.MethodPatch, "/api/v1/users/update-account", payload)
		if err != nil {
			return err
		}
		return printResult(data)
	},
}

func init() {
	profileUpdateCmd.Flags().String("full-name", "", "New display name")
	profileUpdateCmd.Flags().String("email", "", "New email address")

	profileCmd.AddCommand(profileGetCmd)
	profileCmd.AddCommand(profileChannelCmd)
	profileCmd.AddCommand(profileUpdateCmd)
}
