// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package depconf implements a build tool's dependency-configuration
// subsystem: a graph of named configurations that aggregate dependencies,
// artifacts, and exclude rules; extend one another to inherit contents; and
// drive a two-phase resolution pipeline whose results are cached.
package depconf

import (
	"sync"

	"github.com/daml-tools/depconf/internal/attributes"
	"github.com/daml-tools/depconf/internal/cachelock"
	"github.com/daml-tools/depconf/internal/composite"
	"github.com/daml-tools/depconf/internal/deps"
	"github.com/daml-tools/depconf/internal/resolve"
)

const (
	stateUnresolved        = resolve.Unresolved
	stateGraphResolved     = resolve.GraphResolved
	stateArtifactsResolved = resolve.ArtifactsResolved
)

// Configuration is the central entity of this subsystem.
type Configuration struct {
	path string
	name string

	description string
	format      string
	visible     bool
	transitive  bool

	canBeConsumed bool
	canBeResolved bool

	resolver         Resolver
	listeners        ListenerManager
	projectFinder    ProjectFinder
	metadataProvider DependencyMetadataProvider
	metadataBuilder  ComponentMetadataBuilder
	cacheLock        *cachelock.Manager

	ownDeps          *deps.DependencySet
	ownArtifacts     *deps.ArtifactSet
	excludeRules     *deps.ExcludeRuleSet
	allDepsView      *composite.DependencyView
	allArtifactsView *composite.ArtifactView

	attrs *attributes.Container

	parents         []*Configuration
	childValidators []*Configuration

	defaultDependencyActions []func(*Configuration) error
	strategy                 *ResolutionStrategy
	incoming                 *Incoming
	rootComponent            RootComponent

	resolutionLock  sync.Mutex
	observationLock sync.Mutex

	resolvedState        resolve.State
	observedState        resolve.State
	dependenciesModified bool
	insideBeforeResolve  bool
	cachedResults        *resolve.Results
}

// NewConfiguration creates a configuration in the UNRESOLVED state, with
// both roles enabled by default. cacheLock serializes this configuration's
// (and its copies') artifact-materializing reads against the shared cache
// scope it was constructed with.
func NewConfiguration(
	path, name string,
	resolver Resolver,
	listeners ListenerManager,
	projectFinder ProjectFinder,
	metadataProvider DependencyMetadataProvider,
	metadataBuilder ComponentMetadataBuilder,
	cacheLock *cachelock.Manager,
) *Configuration {
	c := &Configuration{
		path:             path,
		name:             name,
		visible:          true,
		transitive:       true,
		canBeConsumed:    true,
		canBeResolved:    true,
		resolver:         resolver,
		listeners:        listeners,
		projectFinder:    projectFinder,
		metadataProvider: metadataProvider,
		metadataBuilder:  metadataBuilder,
		cacheLock:        cacheLock,
		ownDeps:          deps.NewDependencySet(),
		ownArtifacts:     deps.NewArtifactSet(),
		excludeRules:     deps.NewExcludeRuleSet(),
		strategy:         newResolutionStrategy(),
	}
	c.allDepsView = composite.NewDependencyView(c.ownDeps)
	c.allArtifactsView = composite.NewArtifactView(c.ownArtifacts)
	c.attrs = attributes.NewContainer(func() error { return c.validateMutation(MutationAttributes) })
	c.incoming = &Incoming{config: c}
	c.strategy.owner = c
	return c
}

func (c *Configuration) Path() string { return c.path }
func (c *Configuration) Name() string { return c.name }

func (c *Configuration) Description() string { return c.description }

func (c *Configuration) SetDescription(d string) error {
	if err := c.validateMutation(MutationRole); err != nil {
		return err
	}
	c.description = d
	return nil
}

func (c *Configuration) Format() string { return c.format }

func (c *Configuration) SetFormat(f string) error {
	if err := c.validateMutation(MutationRole); err != nil {
		return err
	}
	c.format = f
	return nil
}

func (c *Configuration) Visible() bool { return c.visible }

func (c *Configuration) SetVisible(v bool) error {
	if err := c.validateMutation(MutationRole); err != nil {
		return err
	}
	c.visible = v
	return nil
}

func (c *Configuration) Transitive() bool { return c.transitive }

func (c *Configuration) SetTransitive(v bool) error {
	if err := c.validateMutation(MutationRole); err != nil {
		return err
	}
	c.transitive = v
	return nil
}

func (c *Configuration) CanBeConsumed() bool { return c.canBeConsumed }

func (c *Configuration) SetCanBeConsumed(v bool) error {
	if err := c.validateMutation(MutationRole); err != nil {
		return err
	}
	c.canBeConsumed = v
	return nil
}

func (c *Configuration) CanBeResolved() bool { return c.canBeResolved }

func (c *Configuration) SetCanBeResolved(v bool) error {
	if err := c.validateMutation(MutationRole); err != nil {
		return err
	}
	c.canBeResolved = v
	return nil
}

// Attributes is the mutable attribute container.
func (c *Configuration) Attributes() *attributes.Container { return c.attrs }

// Dependencies returns this configuration's own dependency declarations, in
// insertion order.
func (c *Configuration) Dependencies() []deps.Dependency { return c.ownDeps.Items() }

// AllDependencies returns own dependencies followed by each parent's
// AllDependencies, recursively.
func (c *Configuration) AllDependencies() []deps.Dependency { return c.allDepsView.All() }

func (c *Configuration) AddDependency(d deps.Dependency) error {
	if err := c.validateMutation(MutationDependencies); err != nil {
		return err
	}
	c.ownDeps.Add(d)
	return nil
}

func (c *Configuration) RemoveDependency(id string) error {
	if err := c.validateMutation(MutationDependencies); err != nil {
		return err
	}
	c.ownDeps.Remove(id)
	return nil
}

// Artifacts returns this configuration's own produced artifacts.
func (c *Configuration) Artifacts() []deps.Artifact { return c.ownArtifacts.Items() }

// AllArtifacts returns own artifacts followed by each parent's AllArtifacts,
// recursively.
func (c *Configuration) AllArtifacts() []deps.Artifact { return c.allArtifactsView.All() }

func (c *Configuration) AddArtifact(a deps.Artifact) error {
	if err := c.validateMutation(MutationArtifacts); err != nil {
		return err
	}
	c.ownArtifacts.Add(a)
	return nil
}

func (c *Configuration) RemoveArtifact(name string) error {
	if err := c.validateMutation(MutationArtifacts); err != nil {
		return err
	}
	c.ownArtifacts.Remove(name)
	return nil
}

func (c *Configuration) ExcludeRules() []deps.ExcludeRule { return c.excludeRules.Items() }

func (c *Configuration) AddExcludeRule(r deps.ExcludeRule) error {
	if err := c.validateMutation(MutationDependencies); err != nil {
		return err
	}
	c.excludeRules.Add(r)
	return nil
}

// DefaultDependencies registers a callback invoked at resolution start only
// if this configuration's own dependency set is currently empty.
func (c *Configuration) DefaultDependencies(action func(*Configuration) error) error {
	if err := c.validateMutation(MutationDependencies); err != nil {
		return err
	}
	c.defaultDependencyActions = append(c.defaultDependencyActions, action)
	return nil
}

// ResolutionStrategy exposes the strategy-classified mutation surface:
// changes here are exempt from the already-observed rejection.
func (c *Configuration) ResolutionStrategy() *ResolutionStrategy {
	return c.strategy
}

// RootComponent returns the root component metadata built for this
// configuration's owning module at the start of its most recent graph
// resolution, or the zero value before any resolution has run.
func (c *Configuration) RootComponent() RootComponent {
	return c.rootComponent
}

var _ resolve.ObservableConfig = (*Configuration)(nil)

// Dump renders the human-readable multi-line representation: class name,
// identity, local dependencies, local artifacts, all dependencies, all
// artifacts.
func (c *Configuration) Dump() string {
	return dump(c)
}
