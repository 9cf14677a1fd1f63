// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var rateCmd = &cobra.Command{
	Use:   "rate <id> <1-5>",
	Short: "Rate a movie from 1 to 5 stars",
	Long: `Rate stores your rating for a movie. Rating the same movie again
replaces the earlier rating. Ratings outside 1-5 are rejected.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("rating must be a whole number from 1 to 5, got %q", args[1])
		}

		a, err := newApp(cmd, appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		return shown(a.ctrl.OnSetRating(cmd.Context(), args[0], n))
	},
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Toggle dark mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		return shown(a.ctrl.OnToggleTheme(cmd.Context()))
	},
}

func init() {
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(themeCmd)
}
