// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package lenient_test

import (
	"errors"
	"testing"

	"github.com/daml-tools/depconf/internal/cachelock"
	"github.com/daml-tools/depconf/internal/cerr"
	"github.com/daml-tools/depconf/internal/deps"
	"github.com/daml-tools/depconf/internal/lenient"
	"github.com/daml-tools/depconf/internal/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResultsWithArtifacts() *resolve.Results {
	r := resolve.NewResults()
	r.Graph = resolve.NewResolutionResult("root")
	a := &deps.ExternalModuleDependency{Group: "g", Module: "a"}
	b := &deps.ExternalModuleDependency{Group: "g", Module: "b"}
	r.Graph.AddNode(&resolve.GraphNode{ID: "a", Dependency: a}, true)
	r.Graph.AddNode(&resolve.GraphNode{ID: "b", Dependency: b}, true)
	r.AddArtifacts("a", resolve.NewResolvedArtifact("art:a", "a", false, "/cache/a.jar"))
	r.AddArtifacts("b", resolve.NewResolvedArtifact("art:b", "b", false, "/cache/b.jar"))
	return r
}

func TestWalkFastPathVisitsAllArtifacts(t *testing.T) {
	r := newResultsWithArtifacts()
	var collected []string
	v := lenient.NewFilesVisitor(&collected)

	err := lenient.Walk(cachelock.NewManager(t.TempDir()), r, nil, true, "files", ":conf", "configuration ':conf'", v)

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/cache/a.jar", "/cache/b.jar"}, collected)
}

func TestWalkFilteredPathOnlyVisitsMatchingFirstLevelNodes(t *testing.T) {
	r := newResultsWithArtifacts()
	var artifacts []*resolve.ResolvedArtifactResult
	v := lenient.NewArtifactsVisitor(&artifacts)

	spec := func(d deps.Dependency) bool {
		em, ok := d.(*deps.ExternalModuleDependency)
		return ok && em.Module == "a"
	}

	err := lenient.Walk(cachelock.NewManager(t.TempDir()), r, spec, true, "artifacts", ":conf", "configuration ':conf'", v)

	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, "art:a", artifacts[0].ID)
}

func TestWalkIgnoresMissingExternalArtifact(t *testing.T) {
	r := resolve.NewResults()
	r.Graph = resolve.NewResolutionResult("root")
	d := &deps.ExternalModuleDependency{Group: "g", Module: "missing"}
	r.Graph.AddNode(&resolve.GraphNode{ID: "m", Dependency: d}, true)
	r.AddArtifacts("m", resolve.NewFailedArtifact("art:m", "m", true,
		&cerr.ArtifactResolveFailure{ArtifactID: "art:m", Cause: errors.New("404")}))

	var artifacts []*resolve.ResolvedArtifactResult
	v := lenient.NewArtifactsVisitor(&artifacts)

	err := lenient.Walk(cachelock.NewManager(t.TempDir()), r, nil, true, "artifacts", ":conf", "configuration ':conf'", v)

	require.NoError(t, err)
	assert.Empty(t, artifacts)
}

func TestWalkPropagatesNonExternalFailure(t *testing.T) {
	r := resolve.NewResults()
	r.Graph = resolve.NewResolutionResult("root")
	d := &deps.ExternalModuleDependency{Group: "g", Module: "broken"}
	r.Graph.AddNode(&resolve.GraphNode{ID: "b", Dependency: d}, true)
	r.AddArtifacts("b", resolve.NewFailedArtifact("art:b", "b", false, errors.New("disk full")))

	var artifacts []*resolve.ResolvedArtifactResult
	v := lenient.NewArtifactsVisitor(&artifacts)

	err := lenient.Walk(cachelock.NewManager(t.TempDir()), r, nil, true, "artifacts", ":conf", "configuration ':conf'", v)

	require.Error(t, err)
	var wf *lenient.WalkFailure
	require.ErrorAs(t, err, &wf)
	assert.Equal(t, "artifacts", wf.Context)
	assert.Len(t, wf.Causes, 1)
}

func TestIdentifiedVisitorDedupesByIdentifierAndPath(t *testing.T) {
	r := resolve.NewResults()
	r.Graph = resolve.NewResolutionResult("root")
	d := &deps.ExternalModuleDependency{Group: "g", Module: "a"}
	r.Graph.AddNode(&resolve.GraphNode{ID: "a", Dependency: d}, true)
	r.AddArtifacts("a",
		resolve.NewResolvedArtifact("art:a", "a", false, "/cache/a.jar"),
		resolve.NewResolvedArtifact("art:a", "a", false, "/cache/a.jar"),
	)
	r.FileDependencies = []resolve.FileDependencyEntry{
		{Dependency: &deps.LocalFileDependency{Name: "libs"}, Files: []string{"/local/x.jar", "/local/x.jar"}},
	}

	var collected []lenient.IdentifiedArtifact
	v := lenient.NewIdentifiedVisitor(&collected)

	err := lenient.Walk(cachelock.NewManager(t.TempDir()), r, nil, true, "files", ":conf", "configuration ':conf'", v)

	require.NoError(t, err)
	require.Len(t, collected, 2)
	assert.Equal(t, "file", collected[0].Kind)
	assert.Equal(t, "file:/local/x.jar", collected[0].ID)
	assert.Equal(t, "artifact", collected[1].Kind)
	assert.Equal(t, "art:a", collected[1].ID)
}
