package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/crawldesk-api/internal/service"
)

func newSeedCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed [--file PATH]",
		Short: "Create a profile from a JSON or YAML seed file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			path := file
			if path == "" {
				path = a.cfg.ProfileSeedPath
			}

			in, err := loadSeed(path)
			if err != nil {
				return err
			}

			profile, err := a.services.Profile.Create(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("create profile: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created profile %s (%s)\n", profile.ID, profile.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "seed file (defaults to PROFILE_SEED_PATH)")
	return cmd
}

// loadSeed reads a profile seed. Files ending in .yaml or .yml are YAML,
// anything else is JSON.
func loadSeed(path string) (service.ProfileInput, error) {
	var in service.ProfileInput

	data, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("read seed file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &in)
	default:
		err = json.Unmarshal(data, &in)
	}
	if err != nil {
		return in, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return in, nil
}
