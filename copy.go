// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package depconf

// Copy materializes a new configuration holding a snapshot of this
// configuration's own dependencies, artifacts, and exclude rules, with a
// fresh UNRESOLVED state and no extendsFrom edges.
func (c *Configuration) Copy() *Configuration { return c.copyWith(false, nil) }

// CopyRecursive is like Copy but snapshots the full inherited
// (AllDependencies/AllArtifacts) view rather than just this configuration's
// own declarations.
func (c *Configuration) CopyRecursive() *Configuration { return c.copyWith(true, nil) }

// CopyOnlyWithDependencies is Copy filtered to dependencies matching spec.
func (c *Configuration) CopyOnlyWithDependencies(spec DependencySpec) *Configuration {
	return c.copyWith(false, spec)
}

// CopyRecursiveWithDependencies is CopyRecursive filtered to dependencies
// matching spec.
func (c *Configuration) CopyRecursiveWithDependencies(spec DependencySpec) *Configuration {
	return c.copyWith(true, spec)
}

func (c *Configuration) copyWith(recursive bool, spec DependencySpec) *Configuration {
	cp := NewConfiguration(c.path+"Copy", c.name+"Copy", c.resolver, c.listeners, c.projectFinder, c.metadataProvider, c.metadataBuilder, c.cacheLock)
	cp.description = c.description
	cp.format = c.format
	cp.visible = c.visible
	cp.transitive = c.transitive
	// A copy carries over canBeConsumed/canBeResolved rather than resetting
	// them to their defaults.
	cp.canBeConsumed = c.canBeConsumed
	cp.canBeResolved = c.canBeResolved

	sourceDeps := c.Dependencies()
	sourceArtifacts := c.Artifacts()
	if recursive {
		sourceDeps = c.AllDependencies()
		sourceArtifacts = c.AllArtifacts()
	}

	for _, d := range sourceDeps {
		if spec != nil && !spec(d) {
			continue
		}
		cp.ownDeps.Add(d.Copy())
	}
	for _, a := range sourceArtifacts {
		cp.ownArtifacts.Add(a.Copy())
	}
	for _, r := range c.excludeRules.Items() {
		cp.excludeRules.Add(r)
	}

	snapshot := c.attrs.AsImmutable()
	for _, attr := range snapshot.Keys() {
		if v, ok := snapshot.Get(attr.Name); ok {
			_ = cp.attrs.Put(attr, v)
		}
	}

	return cp
}
