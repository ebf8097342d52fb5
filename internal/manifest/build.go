// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"fmt"

	"github.com/daml-tools/depconf"
	"github.com/daml-tools/depconf/internal/cachelock"
	"github.com/daml-tools/depconf/internal/deps"
)

// Build materializes a GraphSpec into a set of wired *depconf.Configuration
// values, keyed by path: every node is constructed first, then extendsFrom
// edges and dependencies are applied in a second pass so forward
// references between configurations resolve correctly.
func Build(
	g *GraphSpec,
	resolver depconf.Resolver,
	listeners depconf.ListenerManager,
	projectFinder depconf.ProjectFinder,
	metadataProvider depconf.DependencyMetadataProvider,
	metadataBuilder depconf.ComponentMetadataBuilder,
	cacheLock *cachelock.Manager,
) (map[string]*depconf.Configuration, error) {
	configs := make(map[string]*depconf.Configuration, len(g.Configurations))
	for _, spec := range g.Configurations {
		cfg := depconf.NewConfiguration(spec.Path, spec.Name, resolver, listeners, projectFinder, metadataProvider, metadataBuilder, cacheLock)
		if spec.Description != "" {
			if err := cfg.SetDescription(spec.Description); err != nil {
				return nil, err
			}
		}
		configs[spec.Path] = cfg
	}

	for _, spec := range g.Configurations {
		cfg := configs[spec.Path]

		var parents []*depconf.Configuration
		for _, parentPath := range spec.ExtendsFrom {
			parent, ok := configs[parentPath]
			if !ok {
				return nil, fmt.Errorf("configuration %q extends unknown configuration %q", spec.Path, parentPath)
			}
			parents = append(parents, parent)
		}
		if len(parents) > 0 {
			if err := cfg.ExtendsFrom(parents...); err != nil {
				return nil, err
			}
		}

		for _, depSpec := range spec.Dependencies {
			dep, err := buildDependency(depSpec)
			if err != nil {
				return nil, err
			}
			if err := cfg.AddDependency(dep); err != nil {
				return nil, err
			}
		}
	}

	return configs, nil
}

func buildDependency(spec DependencySpec) (deps.Dependency, error) {
	if len(spec.Files) > 0 {
		name := spec.Name
		if name == "" {
			return nil, fmt.Errorf("file-collection dependency requires a name")
		}
		return &deps.LocalFileDependency{Name: name, Paths: spec.Files, BuildTasks: spec.BuildTasks}, nil
	}
	if spec.Group == "" || spec.Module == "" {
		return nil, fmt.Errorf("dependency must declare either files or group+module")
	}
	return &deps.ExternalModuleDependency{
		Group:      spec.Group,
		Module:     spec.Module,
		Constraint: spec.Constraint,
		Transitive: spec.Transitive,
	}, nil
}
