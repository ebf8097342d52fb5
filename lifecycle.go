// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package depconf

import (
	"log/slog"

	"github.com/daml-tools/depconf/internal/cerr"
	"github.com/daml-tools/depconf/internal/resolve"
)

// resolveToStateOrLater drives the configuration's resolution state machine
// to at least target.
func (c *Configuration) resolveToStateOrLater(target resolve.State) error {
	if !c.canBeResolved {
		return cerr.NewStateMachineError("resolution is not allowed for configuration ':%s'", c.path)
	}

	c.resolutionLock.Lock()
	defer c.resolutionLock.Unlock()

	if target >= stateGraphResolved {
		if err := c.resolveGraphIfRequired(target); err != nil {
			return err
		}
	}
	if target == stateArtifactsResolved {
		if err := c.resolveArtifactsIfRequired(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Configuration) resolveGraphIfRequired(target resolve.State) error {
	switch c.resolvedState {
	case stateArtifactsResolved:
		if c.dependenciesModified {
			return cerr.NewStateMachineError(
				"configuration ':%s' was re-resolved after its dependencies were modified", c.path)
		}
		return nil
	case stateGraphResolved:
		if !c.dependenciesModified {
			return nil
		}
		return cerr.NewStateMachineError(
			"configuration ':%s' was re-resolved after its dependencies were modified", c.path)
	}

	c.insideBeforeResolve = true
	c.listeners.BeforeResolve(c.incoming)
	for _, fn := range c.incoming.beforeResolve {
		fn(c.incoming)
	}
	c.insideBeforeResolve = false

	if err := c.runDefaultDependencyActions(); err != nil {
		return err
	}

	root, err := c.metadataBuilder.BuildRootComponent(c.metadataProvider.OwningModule(), c.Hierarchy())
	if err != nil {
		return err
	}
	c.rootComponent = root

	if c.cachedResults == nil {
		c.cachedResults = resolve.NewResults()
	}
	slog.Debug("resolving dependency graph", "path", c.path)
	if err := c.resolver.ResolveGraph(c, c.cachedResults); err != nil {
		return err
	}

	c.dependenciesModified = false
	c.resolvedState = stateGraphResolved

	c.propagateObserved(target)
	c.markReferencedProjectsObserved(target)

	c.listeners.AfterResolve(c.incoming)
	for _, fn := range c.incoming.afterResolve {
		fn(c.incoming)
	}
	return nil
}

func (c *Configuration) resolveArtifactsIfRequired() error {
	if c.resolvedState == stateArtifactsResolved {
		return nil
	}
	if c.resolvedState != stateGraphResolved {
		return cerr.NewStateMachineError(
			"cannot resolve artifacts for configuration ':%s' before its graph is resolved", c.path)
	}
	slog.Debug("resolving artifacts", "path", c.path)
	if err := c.resolver.ResolveArtifacts(c, c.cachedResults); err != nil {
		return err
	}
	c.resolvedState = stateArtifactsResolved
	return nil
}

// runDefaultDependencyActions executes this configuration's own
// default-dependency actions (only when its own dependency set is empty),
// then recurses into every parent unconditionally.
func (c *Configuration) runDefaultDependencyActions() error {
	if c.ownDeps.Len() == 0 {
		for _, action := range c.defaultDependencyActions {
			if err := action(c); err != nil {
				return err
			}
		}
	}
	for _, p := range c.parents {
		if err := p.runDefaultDependencyActions(); err != nil {
			return err
		}
	}
	return nil
}

// MarkObserved implements resolve.ObservableConfig: it advances this
// configuration's observedState monotonically and forwards the same level
// to its own parents.
func (c *Configuration) MarkObserved(state resolve.State) {
	c.observationLock.Lock()
	if state <= c.observedState {
		c.observationLock.Unlock()
		return
	}
	c.observedState = state
	c.observationLock.Unlock()

	for _, p := range c.parents {
		p.MarkObserved(state)
	}
}

func (c *Configuration) propagateObserved(state resolve.State) {
	for _, p := range c.parents {
		p.MarkObserved(state)
	}
}

func (c *Configuration) markReferencedProjectsObserved(state resolve.State) {
	if c.cachedResults == nil || c.cachedResults.LocalComponents == nil || c.projectFinder == nil {
		return
	}
	for _, path := range c.cachedResults.LocalComponents.ReferencedProjectPaths {
		configs, err := c.projectFinder.FindProjectConfigurations(path)
		if err != nil {
			slog.Warn("failed to look up referenced project configurations", "path", path, "err", err.Error())
			continue
		}
		for _, cfg := range configs {
			cfg.MarkObserved(state)
		}
	}
}

// State reports the resolution-lifecycle state as a string, surfacing
// RESOLVED_WITH_FAILURES when the graph resolved but artifacts errored.
func (c *Configuration) State() string {
	if c.resolvedState >= stateGraphResolved && c.cachedResults != nil && c.cachedResults.HasError() {
		return "RESOLVED_WITH_FAILURES"
	}
	return c.resolvedState.String()
}

// BuildDependencies reports the task names this configuration's current
// dependency set needs built before the configuration itself can resolve.
func (c *Configuration) BuildDependencies() ([]string, error) {
	if c.strategy.resolveGraphToDetermineTaskDependencies {
		if err := c.resolveToStateOrLater(stateGraphResolved); err != nil {
			return nil, err
		}
		return c.collectBuildDependencies(c.cachedResults), nil
	}

	if c.resolvedState == stateUnresolved {
		scratch := resolve.NewResults()
		if err := c.resolver.ResolveBuildDependencies(c, scratch); err != nil {
			return nil, err
		}
		return c.collectBuildDependencies(scratch), nil
	}
	return c.collectBuildDependencies(c.cachedResults), nil
}

func (c *Configuration) collectBuildDependencies(results *resolve.Results) []string {
	var out []string
	if results == nil {
		return out
	}
	results.LocalComponents.CollectArtifactBuildDependencies(&out)
	for _, fd := range results.FileDependencies {
		out = append(out, fd.Dependency.BuildDependencyTasks()...)
	}
	return out
}
