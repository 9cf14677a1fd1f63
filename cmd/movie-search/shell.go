// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/pdiddy/movie-search/internal/shell"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shell",
	Long: `Shell starts an interactive session. Type a movie title to search, then
use detail, fav, rate, favorites, history, and back to move around.
Type help for the full command list and quit to leave.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, appOptions{needAPI: true, interactive: true})
		if err != nil {
			return err
		}
		defer a.Close()

		sh := shell.New(a.ctrl, cmd.InOrStdin(), cmd.OutOrStdout(), a.log.Named("shell"))
		if err := sh.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
