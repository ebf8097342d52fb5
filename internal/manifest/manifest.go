// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package manifest loads a YAML-described configuration graph, the way
// pkg/schema.go's ManifestMeta/ValidateSchema pattern gates pkg/packagelock
// and pkg/sdkmanifest documents, generalized here to depconf's
// configuration/dependency shape instead of a package lock.
package manifest

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

const (
	Kind       = "ConfigurationGraph"
	APIVersion = "depconf/v1"
)

// ManifestMeta is the schema header every manifest document carries.
type ManifestMeta struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
}

// Validate checks this document declares the kind/apiVersion the loader
// expects.
func (m ManifestMeta) Validate() error {
	if m.Kind != Kind {
		return fmt.Errorf("invalid configuration graph manifest: expected kind %q, got %q", Kind, m.Kind)
	}
	if m.APIVersion != APIVersion {
		return fmt.Errorf("invalid configuration graph manifest: expected apiVersion %q, got %q", APIVersion, m.APIVersion)
	}
	return nil
}

// DependencySpec describes one dependency declaration. A spec with Files
// set is a file-collection dependency; otherwise it is an external-module
// dependency addressed by group/module/constraint.
type DependencySpec struct {
	Name       string   `yaml:"name,omitempty"`
	Group      string   `yaml:"group,omitempty"`
	Module     string   `yaml:"module,omitempty"`
	Constraint string   `yaml:"constraint,omitempty"`
	Transitive bool     `yaml:"transitive,omitempty"`
	Files      []string `yaml:"files,omitempty"`
	BuildTasks []string `yaml:"buildTasks,omitempty"`
}

// ConfigSpec describes one configuration node.
type ConfigSpec struct {
	Path         string           `yaml:"path"`
	Name         string           `yaml:"name"`
	Description  string           `yaml:"description,omitempty"`
	ExtendsFrom  []string         `yaml:"extendsFrom,omitempty"`
	Dependencies []DependencySpec `yaml:"dependencies,omitempty"`
}

// GraphSpec is the top-level manifest document.
type GraphSpec struct {
	ManifestMeta   `yaml:",inline"`
	Configurations []ConfigSpec `yaml:"configurations"`
}

// Load reads and validates a configuration-graph manifest from disk.
func Load(path string) (*GraphSpec, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadBytes(contents)
}

// LoadBytes parses a configuration-graph manifest from raw YAML.
func LoadBytes(contents []byte) (*GraphSpec, error) {
	var g GraphSpec
	if err := yaml.Unmarshal(contents, &g); err != nil {
		return nil, err
	}
	if err := g.ManifestMeta.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}
