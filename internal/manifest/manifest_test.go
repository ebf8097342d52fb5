// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package manifest_test

import (
	"testing"

	"github.com/daml-tools/depconf/internal/cachelock"
	"github.com/daml-tools/depconf/internal/manifest"
	"github.com/daml-tools/depconf/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const graphYAML = `
apiVersion: depconf/v1
kind: ConfigurationGraph
configurations:
  - path: api
    name: api
    dependencies:
      - group: com.example
        module: core
        constraint: "1.0.0"
  - path: implementation
    name: implementation
    extendsFrom: [api]
    dependencies:
      - group: com.example
        module: util
        constraint: "2.0.0"
`

func TestLoadBytesValidatesSchema(t *testing.T) {
	_, err := manifest.LoadBytes([]byte("apiVersion: wrong/v1\nkind: ConfigurationGraph\n"))
	assert.Error(t, err)
}

func TestLoadBytesParsesGraph(t *testing.T) {
	g, err := manifest.LoadBytes([]byte(graphYAML))
	require.NoError(t, err)
	require.Len(t, g.Configurations, 2)
	assert.Equal(t, "api", g.Configurations[0].Path)
	assert.Equal(t, []string{"api"}, g.Configurations[1].ExtendsFrom)
}

func TestBuildWiresExtendsFromAndDependencies(t *testing.T) {
	g, err := manifest.LoadBytes([]byte(graphYAML))
	require.NoError(t, err)

	resolver := testsupport.NewFakeResolver()
	configs, err := manifest.Build(g, resolver,
		&testsupport.FakeListenerManager{}, &testsupport.FakeProjectFinder{},
		&testsupport.FakeMetadataProvider{}, &testsupport.FakeComponentMetadataBuilder{},
		cachelock.NewManager(t.TempDir()))
	require.NoError(t, err)

	impl := configs["implementation"]
	require.NotNil(t, impl)
	all := impl.AllDependencies()
	require.Len(t, all, 2)
	assert.Equal(t, "com.example:util:2.0.0", all[0].ID())
	assert.Equal(t, "com.example:core:1.0.0", all[1].ID())
}

func TestBuildRejectsUnknownParent(t *testing.T) {
	g := &manifest.GraphSpec{
		Configurations: []manifest.ConfigSpec{
			{Path: "a", Name: "a", ExtendsFrom: []string{"missing"}},
		},
	}
	_, err := manifest.Build(g, testsupport.NewFakeResolver(),
		&testsupport.FakeListenerManager{}, &testsupport.FakeProjectFinder{},
		&testsupport.FakeMetadataProvider{}, &testsupport.FakeComponentMetadataBuilder{},
		cachelock.NewManager(t.TempDir()))
	assert.Error(t, err)
}
