// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/daml-tools/depconf"
	"github.com/daml-tools/depconf/internal/cachelock"
	"github.com/daml-tools/depconf/internal/manifest"
	"github.com/daml-tools/depconf/internal/testsupport"
)

// loadGraph parses a manifest file and wires it into a set of
// *depconf.Configuration values. The demo resolver stands in for the real,
// network-backed Resolver this repository deliberately doesn't implement
// (spec §1 Non-goals): it resolves every configuration's dependency
// declarations to a synthetic /cache/<id>.jar artifact.
func loadGraph(path string) (*manifest.GraphSpec, map[string]*depconf.Configuration, error) {
	g, err := manifest.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", path, err)
	}

	resolver := testsupport.NewFakeResolver()
	configs, err := manifest.Build(g, resolver,
		&testsupport.FakeListenerManager{},
		&testsupport.FakeProjectFinder{},
		&testsupport.FakeMetadataProvider{},
		&testsupport.FakeComponentMetadataBuilder{},
		cachelock.NewManager(os.TempDir()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("building configuration graph: %w", err)
	}
	return g, configs, nil
}
