// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package depconf

import (
	"fmt"
	"strings"

	"github.com/daml-tools/depconf/internal/deps"
	"github.com/goccy/go-yaml"
)

// Snapshot is the YAML-serializable companion to Dump(), mirroring how
// pkg/packagelock round-trips its manifest through goccy/go-yaml.
type Snapshot struct {
	Path            string   `yaml:"path"`
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description,omitempty"`
	Dependencies    []string `yaml:"dependencies"`
	AllDependencies []string `yaml:"allDependencies"`
	Artifacts       []string `yaml:"artifacts"`
	AllArtifacts    []string `yaml:"allArtifacts"`
	State           string   `yaml:"state"`
}

// Snapshot captures this configuration's current identity and dependency
// data as a YAML-serializable value.
func (c *Configuration) Snapshot() *Snapshot {
	return &Snapshot{
		Path:            c.path,
		Name:            c.name,
		Description:     c.description,
		Dependencies:    dependencyIDs(c.Dependencies()),
		AllDependencies: dependencyIDs(c.AllDependencies()),
		Artifacts:       artifactNames(c.Artifacts()),
		AllArtifacts:    artifactNames(c.AllArtifacts()),
		State:           c.State(),
	}
}

// YAML renders the Snapshot as YAML text.
func (s *Snapshot) YAML() (string, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func dependencyIDs(ds []deps.Dependency) []string {
	ids := make([]string, 0, len(ds))
	for _, d := range ds {
		ids = append(ids, d.ID())
	}
	return ids
}

func artifactNames(as []deps.Artifact) []string {
	names := make([]string, 0, len(as))
	for _, a := range as {
		names = append(names, a.Name())
	}
	return names
}

// dump renders the human-readable multi-line representation spec §6 names:
// class name, identity, local dependencies, local artifacts, all
// dependencies, all artifacts.
func dump(c *Configuration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Configuration ':%s' (name=%s)\n", c.path, c.name)
	fmt.Fprintf(&b, "  dependencies:\n")
	for _, d := range c.Dependencies() {
		fmt.Fprintf(&b, "    - %s\n", d.ID())
	}
	fmt.Fprintf(&b, "  artifacts:\n")
	for _, a := range c.Artifacts() {
		fmt.Fprintf(&b, "    - %s\n", a.Name())
	}
	fmt.Fprintf(&b, "  allDependencies:\n")
	for _, d := range c.AllDependencies() {
		fmt.Fprintf(&b, "    - %s\n", d.ID())
	}
	fmt.Fprintf(&b, "  allArtifacts:\n")
	for _, a := range c.AllArtifacts() {
		fmt.Fprintf(&b, "    - %s\n", a.Name())
	}
	return b.String()
}
