// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <title>",
	Short: "Search movies by title",
	Long: `Search queries TMDB for movies whose title matches and prints the first
page of results with the total match count. The query is added to your
search history.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, appOptions{needAPI: true})
		if err != nil {
			return err
		}
		defer a.Close()

		return shown(a.ctrl.OnSearchSubmit(cmd.Context(), strings.Join(args, " ")))
	},
}

var detailCmd = &cobra.Command{
	Use:   "detail <id>",
	Short: "Show full details for a movie",
	Long: `Detail fetches one movie with its credits and prints the director,
writers, cast, runtime, financials (USD and INR), and your own rating.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, appOptions{needAPI: true})
		if err != nil {
			return err
		}
		defer a.Close()

		return shown(a.ctrl.OnSelectDetail(cmd.Context(), args[0]))
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(detailCmd)
}
