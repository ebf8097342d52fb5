// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/daml-tools/depconf/internal/manifest"
)

// graphCmd renders the static shape of a configuration graph: every
// configuration's extendsFrom edges and declared dependency counts, without
// driving any resolution.
func graphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <manifest.yaml>",
		Short: "print the configurations declared by a manifest and how they extend one another",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, configs, err := loadGraph(args[0])
			if err != nil {
				return err
			}

			rows := lo.Map(g.Configurations, func(spec manifest.ConfigSpec, _ int) []string {
				cfg := configs[spec.Path]
				extends := "-"
				if len(spec.ExtendsFrom) > 0 {
					extends = strings.Join(spec.ExtendsFrom, ", ")
				}
				return []string{
					spec.Path,
					extends,
					strconv.Itoa(len(cfg.Dependencies())),
					strconv.Itoa(len(cfg.AllDependencies())),
				}
			})

			t := table.New().
				Border(lipgloss.HiddenBorder()).
				Headers("PATH", "EXTENDS FROM", "OWN DEPS", "ALL DEPS").
				Rows(rows...)
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
	return cmd
}
