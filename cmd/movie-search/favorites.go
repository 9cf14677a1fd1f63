// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"favs"},
	Short:   "List favorite movies",
	Long: `Favorites lists the movies you marked as favorites, in the order you
added them. Use "favorites toggle" to add or remove one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		a.ctrl.ShowFavorites()
		return nil
	},
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <id> [title] [poster-url]",
	Short: "Add a movie to favorites, or remove it if present",
	Args:  cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		args = append(args, "", "")
		return shown(a.ctrl.OnToggleFavorite(cmd.Context(), args[0], args[1], args[2]))
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesToggleCmd)
	rootCmd.AddCommand(favoritesCmd)
}
