package main

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var videosCmd = &cobra.Command{
	Use:   "videos",
	Short: "Browse and manage videos",
}

var videosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List published videos",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")
		query, _ := cmd.Flags().GetString("query")

		params := url.Values{}
		params.Set("page", fmt.Sprint(page))
		params.Set("limit", fmt.Sprint(limit))
		if query != "" {
			params.Set("query", query)
		}

		data, err := apiRequest(http.MethodGet, "/api/v1/videos?"+params.Encode(), nil)
		if err != nil {
			return err
		}
		return printResult(data)
	},
}

var videosGetCmd = &cobra.Command{
	Use:   "get <videoId>",
	Short: "Show a single video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := apiRequest(http.MethodGet, "/api/v1/videos/"+args[0], nil)
		if err != nil {
			return err
		}
		return printResult(data)
	},
}

var videosLikeCmd = &cobra.Command{
	Use:   "like <videoId>",
	Short: "Toggle a like on a video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := apiRequest(http.MethodPost, "/api/v1/likes/toggle/v/"+args[0], nil)
		if err != nil {
			return err
		}
		return printResult(data)
	},
}

func init() {
	videosListCmd.Flags().Int("page", 1, "Page number")
	videosListCmd.Flags().Int("limit", 10, "Results per page")
	videosListCmd.Flags().String("query", "", "Filter by title/description text")

	videosCmd.AddCommand(videosListCmd)
	videosCmd.AddCommand(videosGetCmd)
	videosCmd.AddCommand(videosLikeCmd)
}
