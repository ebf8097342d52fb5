// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"github.com/daml-tools/depconf/internal/deps"
	"github.com/daml-tools/depconf/internal/graph"
)

// NodeID identifies one node (a resolved component/module) in the
// resolution result's module graph.
type NodeID string

// GraphNode is one node of the resolved module graph. Dependency is the
// declaration that produced this node as a direct child of the root
// (nil for nodes only reachable transitively).
type GraphNode struct {
	ID         NodeID
	Dependency deps.Dependency
	Edges      []NodeID
}

// ResolutionResult is the module graph populated by Resolver.ResolveGraph:
// component identities and the edges between them, rooted at a synthetic
// root node representing the configuration itself.
type ResolutionResult struct {
	RootID    NodeID
	Nodes     map[NodeID]*GraphNode
	RootEdges []NodeID
}

func NewResolutionResult(rootID NodeID) *ResolutionResult {
	return &ResolutionResult{RootID: rootID, Nodes: map[NodeID]*GraphNode{rootID: {ID: rootID}}}
}

// AddNode registers a graph node, wiring it as a direct child of the root
// when it originates from a first-level dependency declaration.
func (r *ResolutionResult) AddNode(n *GraphNode, firstLevel bool) {
	r.Nodes[n.ID] = n
	if firstLevel {
		r.RootEdges = append(r.RootEdges, n.ID)
		root := r.Nodes[r.RootID]
		root.Edges = append(root.Edges, n.ID)
	}
}

// FirstLevelNodes returns the direct children of the root whose originating
// declaration satisfies spec, in the order they were added (spec §4.4
// filtered path, step 2).
func (r *ResolutionResult) FirstLevelNodes(spec func(deps.Dependency) bool) []NodeID {
	var out []NodeID
	for _, id := range r.RootEdges {
		n := r.Nodes[id]
		if n.Dependency != nil && spec(n.Dependency) {
			out = append(out, id)
		}
	}
	return out
}

// Walk performs the caching DFS walk described in spec §4.4/§9, starting
// from roots and visiting each reachable node exactly once.
func (r *ResolutionResult) Walk(roots []NodeID, visit func(*GraphNode)) {
	w := graph.NewWalker(func(id NodeID) (graph.Node[NodeID], bool) {
		n, ok := r.Nodes[id]
		if !ok {
			return graph.Node[NodeID]{}, false
		}
		return graph.Node[NodeID]{ID: n.ID, Edges: n.Edges}, true
	})
	w.Walk(roots, func(gn graph.Node[NodeID]) {
		visit(r.Nodes[gn.ID])
	})
}
