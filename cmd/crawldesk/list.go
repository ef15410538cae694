package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newProfilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			profiles, err := a.services.Profile.List(cmd.Context(), false)
			if err != nil {
				return err
			}

			if len(profiles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no profiles registered")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tACTIVE\tDEFAULT PRODUCT")
			for _, p := range profiles {
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", p.ID, p.Name, p.IsActive, p.DefaultProduct)
			}
			return w.Flush()
		},
	}
}

func newProjectsCommand() *cobra.Command {
	var profileID string

	cmd := &cobra.Command{
		Use:   "projects [--profile ID]",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			projects, err := a.services.Project.List(cmd.Context(), profileID)
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no projects registered")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPROFILE\tNAME\tSCRAPER\tSTATUS\tLAST RUN")
			for _, p := range projects {
				lastRun := "-"
				if p.LastRunAt != nil {
					lastRun = p.LastRunAt.Format(time.RFC3339)
				}
				scraperKey := p.ScraperKey
				if scraperKey == "" {
					scraperKey = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.ProfileID, p.Name, scraperKey, p.Status, lastRun)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "only list projects of this profile")
	return cmd
}
