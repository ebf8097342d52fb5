// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package graph_test

import (
	"testing"

	"github.com/daml-tools/depconf/internal/graph"
	"github.com/stretchr/testify/assert"
)

func TestWalkVisitsDiamondNodeOnce(t *testing.T) {
	nodes := map[string]graph.Node[string]{
		"root": {ID: "root", Edges: []string{"a", "b"}},
		"a":    {ID: "a", Edges: []string{"shared"}},
		"b":    {ID: "b", Edges: []string{"shared"}},
		"shared": {ID: "shared"},
	}
	w := graph.NewWalker(func(id string) (graph.Node[string], bool) {
		n, ok := nodes[id]
		return n, ok
	})

	var visits []string
	w.Walk([]string{"root"}, func(n graph.Node[string]) {
		visits = append(visits, n.ID)
	})

	assert.Equal(t, []string{"root", "a", "shared", "b"}, visits)
}

func TestWalkTeminatesOnCycle(t *testing.T) {
	nodes := map[string]graph.Node[string]{
		"a": {ID: "a", Edges: []string{"b"}},
		"b": {ID: "b", Edges: []string{"a"}},
	}
	w := graph.NewWalker(func(id string) (graph.Node[string], bool) {
		n, ok := nodes[id]
		return n, ok
	})

	var visits []string
	w.Walk([]string{"a"}, func(n graph.Node[string]) {
		visits = append(visits, n.ID)
	})

	assert.Equal(t, []string{"a", "b"}, visits)
}
