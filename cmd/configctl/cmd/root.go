// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package cmd implements configctl's command tree, mirroring cmd/dpm/cmd's
// layout: one cobra.Command-returning function per subcommand, wired
// together by RootCmd.
package cmd

import (
	"github.com/spf13/cobra"
)

const Name = "configctl"

// RootCmd builds the configctl command tree: a small inspector/demonstrator
// over a YAML-described configuration graph (internal/manifest), wired
// against the in-module demo resolver since this repository has no real
// network-backed dependency resolver (spec §1 Non-goals).
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   Name,
		Short: "inspect and resolve a dependency-configuration graph",
	}

	root.AddCommand(graphCmd())
	root.AddCommand(resolveCmd())
	return root
}
