package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/crawldesk-api/internal/apperr"
	"github.com/jmylchreest/crawldesk-api/internal/linkfactory"
)

type linksOptions struct {
	sets      []string
	overrides string
	format    string
	output    string
}

func newLinksCommand(reg *linkfactory.Registry) *cobra.Command {
	var opts linksOptions

	cmd := &cobra.Command{
		Use:   "links PRESET [--set name=v1,v2 ...] [--overrides FILE] [--format F] [--output PATH]",
		Short: "Generate the link list of a preset",
		Long: "Expand a preset offline. Without --format the links are printed one per line; " +
			"with --format they are encoded and written to --output (default: the export file name, '-' for stdout). " +
			"Supported formats: " + strings.Join(linkfactory.SupportedFormats(), ", ") + ".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLinks(cmd.OutOrStdout(), reg, args[0], opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.sets, "set", nil, "override a variable, name=v1,v2 (repeatable)")
	cmd.Flags().StringVar(&opts.overrides, "overrides", "", "JSON or YAML file mapping variable names to value lists")
	cmd.Flags().StringVar(&opts.format, "format", "", "export format")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "export destination")
	return cmd
}

func runLinks(out io.Writer, reg *linkfactory.Registry, presetID string, opts linksOptions) error {
	overrides := linkfactory.NewOverrides()
	if opts.overrides != "" {
		fromFile, err := loadOverrides(opts.overrides)
		if err != nil {
			return err
		}
		overrides = fromFile
	}
	if err := applySets(overrides, opts.sets); err != nil {
		return err
	}

	result, err := reg.Generate(presetID, overrides)
	if errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("%w; available presets: %s", err, strings.Join(reg.IDs(), ", "))
	}
	if err != nil {
		return err
	}

	if opts.format == "" {
		for _, link := range result.Links {
			fmt.Fprintln(out, link)
		}
		return nil
	}

	exp, err := linkfactory.Encode(result.Links, opts.format)
	if err != nil {
		return err
	}

	switch opts.output {
	case "-":
		_, err = out.Write(exp.Content)
		return err
	case "":
		opts.output = exp.Filename
	}

	if err := os.WriteFile(opts.output, exp.Content, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(out, "wrote %d links to %s\n", len(result.Links), opts.output)
	return nil
}

// applySets parses name=v1,v2 flags into o. Later flags win.
func applySets(o *linkfactory.Overrides, sets []string) error {
	for _, s := range sets {
		name, values, ok := strings.Cut(s, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return fmt.Errorf("invalid --set %q: want name=v1,v2", s)
		}
		o.Set(name, strings.Split(values, ","))
	}
	return nil
}

// loadOverrides reads an override file. YAML keys are applied in sorted
// order; JSON keeps the file's order.
func loadOverrides(path string) (*linkfactory.Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overrides: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var m map[string][]string
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse overrides %s: %w", path, err)
		}
		return linkfactory.OverridesFromMap(m), nil
	default:
		o := linkfactory.NewOverrides()
		if err := json.Unmarshal(data, o); err != nil {
			return nil, fmt.Errorf("parse overrides %s: %w", path, err)
		}
		return o, nil
	}
}
