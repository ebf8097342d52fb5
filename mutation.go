// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package depconf

import "github.com/daml-tools/depconf/internal/cerr"

// MutationType classifies a mutating operation, per spec §4.1. Every write
// path to a configuration's dependency/artifact/attribute/role/strategy
// state calls validateMutation with the matching type before writing.
type MutationType int

const (
	MutationDependencies MutationType = iota
	MutationArtifacts
	MutationStrategy
	MutationAttributes
	MutationRole
)

func (t MutationType) String() string {
	switch t {
	case MutationDependencies:
		return "dependencies"
	case MutationArtifacts:
		return "artifacts"
	case MutationStrategy:
		return "resolution strategy"
	case MutationAttributes:
		return "attributes"
	case MutationRole:
		return "role"
	default:
		return "unknown"
	}
}

// mutationValidator is the "child validator" of spec §4.1/§4.2: a
// configuration that extends another registers itself on the parent so the
// parent can reject or propagate mutations into it.
type mutationValidator interface {
	validateParentMutation(MutationType) error
}

var _ mutationValidator = (*Configuration)(nil)

// validateMutation implements spec §4.1's rule list for a direct mutation of
// this configuration.
func (c *Configuration) validateMutation(t MutationType) error {
	switch c.resolvedState {
	case stateArtifactsResolved:
		return cerr.NewUserMutationError(
			"cannot change %s of configuration ':%s' because it has already been resolved", t, c.path)
	case stateGraphResolved:
		return cerr.NewUserMutationError(
			"cannot change %s of configuration ':%s' because its task dependencies have already been resolved", t, c.path)
	}

	if (c.observedState == stateGraphResolved || c.observedState == stateArtifactsResolved) && t != MutationStrategy {
		err := cerr.NewUserMutationError(
			"cannot change %s of configuration ':%s' because it was already included in dependency resolution", t, c.path)
		if c.insideBeforeResolve {
			return err.WithHint("consider using the defaultDependencies mechanism instead: " +
				"it lets you specify dependencies that apply only if no dependencies have been added explicitly")
		}
		return err
	}

	for _, child := range c.childValidators {
		if err := child.validateParentMutation(t); err != nil {
			return err
		}
	}
	if t != MutationStrategy {
		c.dependenciesModified = true
	}
	return nil
}

// validateParentMutation implements spec §4.1's "parent mutation"
// propagation: called on a child when one of its parents mutates.
func (c *Configuration) validateParentMutation(t MutationType) error {
	if t == MutationStrategy {
		return nil
	}
	if c.resolvedState == stateArtifactsResolved {
		return cerr.NewUserMutationError(
			"cannot change %s of parent of configuration ':%s' because it has already been resolved", t, c.path)
	}
	if c.resolvedState == stateGraphResolved && t == MutationDependencies {
		return cerr.NewUserMutationError(
			"cannot change %s of parent of configuration ':%s' because its task dependencies have already been resolved", t, c.path)
	}

	c.dependenciesModified = true
	for _, child := range c.childValidators {
		if err := child.validateParentMutation(t); err != nil {
			return err
		}
	}
	return nil
}

func (c *Configuration) addChildValidator(v *Configuration) {
	c.childValidators = append(c.childValidators, v)
}

func (c *Configuration) removeChildValidator(v *Configuration) {
	for i, child := range c.childValidators {
		if child == v {
			c.childValidators = append(c.childValidators[:i], c.childValidators[i+1:]...)
			return
		}
	}
}
