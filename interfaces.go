// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package depconf

import "github.com/daml-tools/depconf/internal/resolve"

// Resolver is the external collaborator that builds the module graph and
// materializes artifacts (spec §6 "out of scope: the actual resolver
// engine"). This package only consumes it.
type Resolver interface {
	// ResolveBuildDependencies populates local-component build-dependency
	// info only, into a throwaway (uncached) Results.
	ResolveBuildDependencies(config *Configuration, out *resolve.Results) error
	// ResolveGraph populates the module graph and local components.
	ResolveGraph(config *Configuration, out *resolve.Results) error
	// ResolveArtifacts populates resolved artifacts, keyed by node id.
	ResolveArtifacts(config *Configuration, out *resolve.Results) error
}

// ListenerManager broadcasts the project-wide
// {beforeResolve, afterResolve} listener set (spec §6).
type ListenerManager interface {
	BeforeResolve(incoming *Incoming)
	AfterResolve(incoming *Incoming)
}

// ProjectFinder resolves a project path to that project's configuration
// set, used to propagate observation to referenced project configurations.
type ProjectFinder interface {
	FindProjectConfigurations(projectPath string) ([]*Configuration, error)
}

// ModuleIdentity names the module a project publishes as, the output of
// DependencyMetadataProvider.
type ModuleIdentity struct {
	Group   string
	Module  string
	Version string
}

// DependencyMetadataProvider yields the module identity of the owning
// project (spec §6).
type DependencyMetadataProvider interface {
	OwningModule() ModuleIdentity
}

// RootComponent is the resolver's entry point into a project's
// configuration graph, as built by ComponentMetadataBuilder.
type RootComponent struct {
	Identity       ModuleIdentity
	Configurations []*Configuration
}

// ComponentMetadataBuilder materializes the root component metadata given
// this project's module identity and its full set of sibling
// configurations (spec §6).
type ComponentMetadataBuilder interface {
	BuildRootComponent(owner ModuleIdentity, siblings []*Configuration) (RootComponent, error)
}
