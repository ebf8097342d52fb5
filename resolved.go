// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package depconf

import (
	"fmt"

	"github.com/daml-tools/depconf/internal/lenient"
	"github.com/daml-tools/depconf/internal/resolve"
)

// DependencySpec is a predicate over dependency declarations, used to
// filter the lenient artifact view.
type DependencySpec = lenient.DependencySpec

// ResolvedConfiguration is the read-only view over a configuration's
// artifacts-resolved results.
type ResolvedConfiguration struct {
	config *Configuration
}

// ResolvedConfiguration drives resolution to ARTIFACTS_RESOLVED and returns
// the resulting view.
func (c *Configuration) ResolvedConfiguration() (*ResolvedConfiguration, error) {
	if err := c.resolveToStateOrLater(stateArtifactsResolved); err != nil {
		return nil, err
	}
	return &ResolvedConfiguration{config: c}, nil
}

func (rc *ResolvedConfiguration) displayName() string {
	return fmt.Sprintf("configuration ':%s'", rc.config.path)
}

// HasError reports whether the underlying resolution recorded a failure,
// without raising it: equivalent to getState() reporting
// RESOLVED_WITH_FAILURES.
func (rc *ResolvedConfiguration) HasError() bool {
	return rc.config.cachedResults != nil && rc.config.cachedResults.HasError()
}

// RethrowFailure re-raises any captured resolution failure as a single
// aggregated error, or nil.
func (rc *ResolvedConfiguration) RethrowFailure() error {
	if rc.config.cachedResults == nil {
		return nil
	}
	return rc.config.cachedResults.Failure()
}

// ResolutionResult exposes the resolved module graph.
func (rc *ResolvedConfiguration) ResolutionResult() *resolve.ResolutionResult {
	if rc.config.cachedResults == nil {
		return nil
	}
	return rc.config.cachedResults.Graph
}

// Files returns the resolved file set for dependencies matching spec (nil
// spec selects every dependency). A missing external file always
// propagates here: the ignore-missing-external leniency applies only to
// the artifacts query, not files.
func (rc *ResolvedConfiguration) Files(spec DependencySpec) ([]string, error) {
	var files []string
	v := lenient.NewFilesVisitor(&files)
	err := lenient.Walk(rc.config.cacheLock, rc.config.cachedResults, spec, false, "files", rc.config.path, rc.displayName(), v)
	return files, err
}

// Artifacts returns the resolved artifacts for dependencies matching spec,
// silently dropping external-module artifacts whose file is missing.
func (rc *ResolvedConfiguration) Artifacts(spec DependencySpec) ([]*resolve.ResolvedArtifactResult, error) {
	var artifacts []*resolve.ResolvedArtifactResult
	v := lenient.NewArtifactsVisitor(&artifacts)
	err := lenient.Walk(rc.config.cacheLock, rc.config.cachedResults, spec, true, "artifacts", rc.config.path, rc.displayName(), v)
	return artifacts, err
}

// IdentifiedArtifacts returns the deduplicated "collect artifacts with
// identifiers" view.
func (rc *ResolvedConfiguration) IdentifiedArtifacts(spec DependencySpec) ([]lenient.IdentifiedArtifact, error) {
	var out []lenient.IdentifiedArtifact
	v := lenient.NewIdentifiedVisitor(&out)
	err := lenient.Walk(rc.config.cacheLock, rc.config.cachedResults, spec, true, "artifacts", rc.config.path, rc.displayName(), v)
	return out, err
}
