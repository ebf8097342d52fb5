// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package depconf

import "github.com/daml-tools/depconf/internal/cerr"

// ExtendsFrom adds each parent to this configuration's extension set,
// rejecting cycles and acting idempotently on a repeated parent (spec
// §4.2).
func (c *Configuration) ExtendsFrom(parents ...*Configuration) error {
	for _, p := range parents {
		if err := c.addParent(p); err != nil {
			return err
		}
	}
	return nil
}

func (c *Configuration) addParent(p *Configuration) error {
	for _, existing := range p.Hierarchy() {
		if existing == c {
			return cerr.NewUserMutationError(
				"cannot add configuration ':%s' as a parent of ':%s': cyclic extendsFrom detected", p.path, c.path)
		}
	}
	for _, existing := range c.parents {
		if existing == p {
			return nil // idempotent
		}
	}

	if err := c.validateMutation(MutationDependencies); err != nil {
		return err
	}

	c.parents = append(c.parents, p)
	c.allDepsView.AddParent(p.allDepsView)
	c.allArtifactsView.AddParent(p.allArtifactsView)
	p.addChildValidator(c)
	return nil
}

// SetExtendsFrom replaces the extension set wholesale: every current parent
// is unregistered first, then the new set is applied one by one (spec
// §4.2).
func (c *Configuration) SetExtendsFrom(newParents []*Configuration) error {
	for _, p := range c.parents {
		p.removeChildValidator(c)
	}
	c.parents = nil
	c.allDepsView.SetParents(nil)
	c.allArtifactsView.SetParents(nil)

	return c.ExtendsFrom(newParents...)
}

// Hierarchy returns [self, P1, P1's parents..., P2, P2's parents..., ...],
// deduplicated so each ancestor appears once, at its last visited position
// (spec §4.2).
func (c *Configuration) Hierarchy() []*Configuration {
	var seq []*Configuration
	var walk func(*Configuration)
	walk = func(n *Configuration) {
		seq = append(seq, n)
		for _, p := range n.parents {
			walk(p)
		}
	}
	walk(c)

	lastIndex := make(map[*Configuration]int, len(seq))
	for i, n := range seq {
		lastIndex[n] = i
	}

	result := make([]*Configuration, 0, len(lastIndex))
	for i, n := range seq {
		if lastIndex[n] == i {
			result = append(result, n)
		}
	}
	return result
}
