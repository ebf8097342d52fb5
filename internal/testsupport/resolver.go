// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package testsupport provides fakes for the external collaborators a
// Configuration depends on (Resolver, ListenerManager, ProjectFinder,
// DependencyMetadataProvider, ComponentMetadataBuilder), mirroring
// pkg/assembler/fake.go and pkg/testutil/testutil.go's plain-struct fakes.
package testsupport

import (
	"fmt"

	"github.com/daml-tools/depconf"
	"github.com/daml-tools/depconf/internal/resolve"
)

// FakeResolver resolves every configuration's full (own + inherited)
// dependency set as first-level graph nodes, one artifact per dependency.
// Override ArtifactFile/FailGraph/FailArtifacts to drive specific test
// scenarios.
type FakeResolver struct {
	ArtifactFile  func(id string) (string, error)
	FailGraph     error
	FailArtifacts error

	GraphCalls     int
	ArtifactCalls  int
	BuildDepsCalls int
}

func NewFakeResolver() *FakeResolver { return &FakeResolver{} }

func (f *FakeResolver) ResolveBuildDependencies(cfg *depconf.Configuration, out *resolve.Results) error {
	f.BuildDepsCalls++
	out.LocalComponents = &resolve.ResolvedLocalComponents{}
	return nil
}

func (f *FakeResolver) ResolveGraph(cfg *depconf.Configuration, out *resolve.Results) error {
	f.GraphCalls++
	if f.FailGraph != nil {
		return f.FailGraph
	}

	out.Graph = resolve.NewResolutionResult(resolve.NodeID(":" + cfg.Path()))
	for _, d := range cfg.AllDependencies() {
		id := resolve.NodeID(d.ID())
		out.Graph.AddNode(&resolve.GraphNode{ID: id, Dependency: d}, true)
	}
	if out.LocalComponents == nil {
		out.LocalComponents = &resolve.ResolvedLocalComponents{}
	}
	return nil
}

func (f *FakeResolver) ResolveArtifacts(cfg *depconf.Configuration, out *resolve.Results) error {
	f.ArtifactCalls++
	if f.FailArtifacts != nil {
		return f.FailArtifacts
	}

	for _, d := range cfg.AllDependencies() {
		id := resolve.NodeID(d.ID())
		file, err := f.artifactFile(d.ID())
		if err != nil {
			out.AddArtifacts(id, resolve.NewFailedArtifact("art:"+d.ID(), id, true, err))
			continue
		}
		out.AddArtifacts(id, resolve.NewResolvedArtifact("art:"+d.ID(), id, true, file))
	}
	return nil
}

func (f *FakeResolver) artifactFile(id string) (string, error) {
	if f.ArtifactFile != nil {
		return f.ArtifactFile(id)
	}
	return fmt.Sprintf("/cache/%s.jar", id), nil
}

var _ depconf.Resolver = (*FakeResolver)(nil)
