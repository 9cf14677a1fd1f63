// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/movie-search/internal/storage"
	"github.com/pdiddy/movie-search/pkg/types"
)

// configReport is the config command's output. The storage fields are
// filled only with --storage.
type configReport struct {
	types.Config `yaml:",inline"`

	Database   string   `yaml:"database,omitempty"`
	StoredKeys []string `yaml:"stored_keys,omitempty"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Config prints the configuration after merging defaults, the config
file, environment variables, and flags. The API key is never printed; it
shows as "set" or is omitted.

With --storage it also opens the preferences database and lists its
location and the keys stored in it.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.TMDB.APIKey != "" {
		cfg.TMDB.APIKey = "set"
	}
	report := configReport{Config: cfg}

	if withStorage, _ := cmd.Flags().GetBool("storage"); withStorage {
		kv, err := storage.Open(cfg.Storage.DataDir)
		if err != nil {
			return err
		}
		defer kv.Close()

		report.Database = kv.Path()
		report.StoredKeys, err = kv.Keys(cmd.Context())
		if err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func init() {
	configCmd.Flags().Bool("storage", false, "also show the database path and stored keys")

	rootCmd.AddCommand(configCmd)
}
