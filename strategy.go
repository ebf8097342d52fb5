// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package depconf

import "github.com/daml-tools/depconf/internal/deps"

// ResolutionStrategy is the STRATEGY-classified mutation surface (SPEC_FULL
// §6): changes here are exempt from the already-observed rejection (spec
// §4.1 rule 3, §8 scenario 2). Kept minimal — full conflict-resolution
// policy is out of scope (spec §1 Non-goals).
type ResolutionStrategy struct {
	owner *Configuration

	failOnVersionConflict                  bool
	forcedModules                          []deps.ExcludeRule
	resolveGraphToDetermineTaskDependencies bool
}

func newResolutionStrategy() *ResolutionStrategy {
	return &ResolutionStrategy{}
}

// FailOnVersionConflict enables strict version-conflict failure.
func (s *ResolutionStrategy) FailOnVersionConflict() error {
	if err := s.owner.validateMutation(MutationStrategy); err != nil {
		return err
	}
	s.failOnVersionConflict = true
	return nil
}

func (s *ResolutionStrategy) FailOnVersionConflictEnabled() bool { return s.failOnVersionConflict }

// Force registers group/module coordinates whose version should be pinned
// regardless of what the graph would otherwise select.
func (s *ResolutionStrategy) Force(rules ...deps.ExcludeRule) error {
	if err := s.owner.validateMutation(MutationStrategy); err != nil {
		return err
	}
	s.forcedModules = append(s.forcedModules, rules...)
	return nil
}

func (s *ResolutionStrategy) ForcedModules() []deps.ExcludeRule { return s.forcedModules }

// SetResolveGraphToDetermineTaskDependencies toggles whether the
// build-dependency query (spec §4.3) must drive a full graph resolution
// rather than the lighter resolveBuildDependencies path.
func (s *ResolutionStrategy) SetResolveGraphToDetermineTaskDependencies(v bool) error {
	if err := s.owner.validateMutation(MutationStrategy); err != nil {
		return err
	}
	s.resolveGraphToDetermineTaskDependencies = v
	return nil
}

func (s *ResolutionStrategy) ResolveGraphToDetermineTaskDependencies() bool {
	return s.resolveGraphToDetermineTaskDependencies
}
