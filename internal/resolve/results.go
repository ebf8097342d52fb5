// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolve

import "github.com/daml-tools/depconf/internal/deps"

// ResolvedArtifactResult is one resolved artifact, keyed by the graph node
// that produced it. GetFile may fail with an *cerr.ArtifactResolveFailure,
// which the lenient view is permitted to swallow for external-module
// artifacts.
type ResolvedArtifactResult struct {
	ID             string
	Node           NodeID
	ExternalModule bool
	file           string
	err            error
}

func NewResolvedArtifact(id string, node NodeID, externalModule bool, file string) *ResolvedArtifactResult {
	return &ResolvedArtifactResult{ID: id, Node: node, ExternalModule: externalModule, file: file}
}

// NewFailedArtifact builds a resolved-artifact result whose GetFile always
// returns err, used to model an unavailable external-module file.
func NewFailedArtifact(id string, node NodeID, externalModule bool, err error) *ResolvedArtifactResult {
	return &ResolvedArtifactResult{ID: id, Node: node, ExternalModule: externalModule, err: err}
}

func (a *ResolvedArtifactResult) GetFile() (string, error) {
	if a.err != nil {
		return "", a.err
	}
	return a.file, nil
}

// FileDependencyEntry pairs a first-level file-collection dependency with
// the artifact files it directly contributes, independent of the module
// graph.
type FileDependencyEntry struct {
	Dependency deps.FileCollectionDependency
	Files      []string
}

// ResolvedLocalComponents exposes the local (in-build) components a
// resolution touched: the project paths whose configurations were consumed
// (which must be looked up via a ProjectFinder and marked observed), and
// the tasks that build them.
type ResolvedLocalComponents struct {
	ReferencedProjectPaths []string
	BuildTasks             []string
}

// CollectArtifactBuildDependencies appends this result's build tasks to out.
func (c *ResolvedLocalComponents) CollectArtifactBuildDependencies(out *[]string) {
	if c == nil {
		return
	}
	*out = append(*out, c.BuildTasks...)
}

// Results is the cached, mutable accumulator a Resolver populates across the
// three resolution phases (build-dependencies, graph, artifacts) and that a
// configuration caches for the lifetime of one resolution.
type Results struct {
	err              error
	Graph            *ResolutionResult
	artifactsByNode  map[NodeID][]*ResolvedArtifactResult
	nodeOrder        []NodeID
	FileDependencies []FileDependencyEntry
	nodeFileDeps     map[NodeID][]FileDependencyEntry
	LocalComponents  *ResolvedLocalComponents
}

func NewResults() *Results {
	return &Results{
		artifactsByNode: map[NodeID][]*ResolvedArtifactResult{},
		nodeFileDeps:    map[NodeID][]FileDependencyEntry{},
		LocalComponents: &ResolvedLocalComponents{},
	}
}

// SetError records a resolution failure. Once set, HasError reports true and
// Failure returns it; it is never cleared automatically (a fresh resolution
// gets a fresh Results).
func (r *Results) SetError(err error) {
	if err == nil {
		return
	}
	r.err = err
}

func (r *Results) HasError() bool { return r.err != nil }

// Failure returns the aggregated resolution failure, or nil.
func (r *Results) Failure() error { return r.err }

// AddArtifacts registers the artifacts resolved for a node, in call order.
func (r *Results) AddArtifacts(node NodeID, artifacts ...*ResolvedArtifactResult) {
	if _, ok := r.artifactsByNode[node]; !ok {
		r.nodeOrder = append(r.nodeOrder, node)
	}
	r.artifactsByNode[node] = append(r.artifactsByNode[node], artifacts...)
}

func (r *Results) ArtifactsForNode(node NodeID) []*ResolvedArtifactResult {
	return r.artifactsByNode[node]
}

// AllArtifacts flattens every node's resolved artifacts in the order nodes
// were first populated, used by the lenient view's fast path.
func (r *Results) AllArtifacts() []*ResolvedArtifactResult {
	var out []*ResolvedArtifactResult
	for _, id := range r.nodeOrder {
		out = append(out, r.artifactsByNode[id]...)
	}
	return out
}

// AddNodeFileDependency attaches file-dependency entries to a non-root
// graph node, for file outputs a transitively-walked node contributes
// beyond its resolved artifacts (e.g. a project dependency several hops
// deep that also produces loose files).
func (r *Results) AddNodeFileDependency(node NodeID, entries ...FileDependencyEntry) {
	r.nodeFileDeps[node] = append(r.nodeFileDeps[node], entries...)
}

// NodeFileDependencies returns the file-dependency entries attached to
// node, if any.
func (r *Results) NodeFileDependencies(node NodeID) []FileDependencyEntry {
	return r.nodeFileDeps[node]
}
