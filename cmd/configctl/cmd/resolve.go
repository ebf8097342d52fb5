// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/daml-tools/depconf/internal/resolve"
)

// resolveCmd drives one configuration in a manifest to ARTIFACTS_RESOLVED
// and prints its snapshot plus its lenient artifact view.
func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <manifest.yaml> <configuration-path>",
		Short: "resolve a configuration from a manifest and print its artifacts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, configs, err := loadGraph(args[0])
			if err != nil {
				return err
			}

			cfg, ok := configs[args[1]]
			if !ok {
				return fmt.Errorf("no configuration %q declared in %s", args[1], args[0])
			}

			rc, err := cfg.ResolvedConfiguration()
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("resolution failed: %s", err.Error()))
				return err
			}

			if rc.HasError() {
				fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("resolved with failures: %s", rc.RethrowFailure().Error()))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("resolved %s", args[1]))
			}

			snap, err := cfg.Snapshot().YAML()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), snap)

			artifacts, err := rc.Artifacts(nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), artifactsTable(artifacts))
			return nil
		},
	}
	return cmd
}

func artifactsTable(artifacts []*resolve.ResolvedArtifactResult) string {
	rows := lo.Map(artifacts, func(a *resolve.ResolvedArtifactResult, _ int) []string {
		file, err := a.GetFile()
		if err != nil {
			file = color.RedString(err.Error())
		}
		return []string{a.ID, file}
	})
	return table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("ARTIFACT", "FILE").
		Rows(rows...).
		String()
}
