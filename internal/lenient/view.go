// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package lenient

import (
	"context"
	"fmt"
	"strings"

	"github.com/daml-tools/depconf/internal/cachelock"
	"github.com/daml-tools/depconf/internal/cerr"
	"github.com/daml-tools/depconf/internal/resolve"
)

// WalkFailure aggregates every throwable a Walk captured into a single
// artifact-resolve exception: contextual type ("files" or "artifacts"),
// configuration path, and display name.
type WalkFailure struct {
	Context           string // "files" or "artifacts"
	ConfigurationPath string
	DisplayName       string
	Causes            []error
}

func (f *WalkFailure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "could not resolve %s for %s (%s)", f.Context, f.DisplayName, f.ConfigurationPath)
	for _, c := range f.Causes {
		fmt.Fprintf(&b, "\n  - %s", c.Error())
	}
	return b.String()
}

func (f *WalkFailure) Unwrap() []error { return f.Causes }

// getFileLocked reads an artifact's materialized file under locker, so two
// callers walking the same resolved configuration never race on a file
// another goroutine is still writing into the cache.
func getFileLocked(locker *cachelock.Manager, a *resolve.ResolvedArtifactResult) (string, error) {
	var file string
	err := locker.UseCache(context.Background(), a.ID, func() error {
		f, err := a.GetFile()
		if err != nil {
			return err
		}
		file = f
		return nil
	})
	return file, err
}

// Walk drives a Visitor over a cached Results: a fast path when spec is
// nil (every dependency matches), and a filtered path that walks only the
// subgraph reachable from matching first-level nodes otherwise. At every
// node the filtered path visits, it also surfaces the file dependencies
// attached to that node id, not just the root's first-level ones.
// ignoreMissingExternal enables the artifact-only leniency rule: a missing
// file on an external-module artifact is dropped rather than propagated.
func Walk(locker *cachelock.Manager, results *resolve.Results, spec DependencySpec, ignoreMissingExternal bool, failureContext, configurationPath, displayName string, v *Visitor) error {
	var causes []error

	visitArtifacts := func(list []*resolve.ResolvedArtifactResult) {
		for _, a := range list {
			file, err := getFileLocked(locker, a)
			if err != nil {
				if ignoreMissingExternal && a.ExternalModule && cerr.IsExternalArtifactFailure(err) {
					continue
				}
				causes = append(causes, err)
				continue
			}
			if v.OnArtifact != nil {
				v.OnArtifact(a, file)
			}
		}
	}

	visitNodeFiles := func(node resolve.NodeID) {
		if !v.WantsFiles || v.OnFiles == nil {
			return
		}
		id := string(node)
		for _, fd := range results.NodeFileDependencies(node) {
			v.OnFiles(&id, fd.Files)
		}
	}

	if isSatisfyAll(spec) {
		if v.WantsFiles && v.OnFiles != nil {
			for _, fd := range results.FileDependencies {
				v.OnFiles(nil, fd.Files)
			}
		}
		visitArtifacts(results.AllArtifacts())
	} else {
		if v.WantsFiles && v.OnFiles != nil {
			for _, fd := range results.FileDependencies {
				if spec(fd.Dependency) {
					v.OnFiles(nil, fd.Files)
				}
			}
		}

		firstLevel := results.Graph.FirstLevelNodes(spec)
		results.Graph.Walk(firstLevel, func(n *resolve.GraphNode) {
			visitNodeFiles(n.ID)
			visitArtifacts(results.ArtifactsForNode(n.ID))
		})
	}

	if len(causes) == 0 {
		return nil
	}
	return &WalkFailure{Context: failureContext, ConfigurationPath: configurationPath, DisplayName: displayName, Causes: causes}
}
