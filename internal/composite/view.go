// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package composite implements the extension-composition views a
// configuration exposes over its own and its parents' dependencies and
// artifacts: own first, then parents in insertion order, recursively.
package composite

import (
	"github.com/daml-tools/depconf/internal/deps"
	"github.com/samber/lo"
)

// DependencyView is the "all dependencies" view of a configuration: its own
// declarations, followed by each extended parent's own view, in the order
// parents were added.
type DependencyView struct {
	own     *deps.DependencySet
	parents []*DependencyView
}

func NewDependencyView(own *deps.DependencySet) *DependencyView {
	return &DependencyView{own: own}
}

// AddParent appends a parent's view as a composite member. Repeated calls
// with the same parent view append it again; callers (Configuration) are
// responsible for idempotent extendsFrom checks before calling this.
func (v *DependencyView) AddParent(parent *DependencyView) {
	v.parents = append(v.parents, parent)
}

// SetParents replaces the parent views wholesale, used by setExtendsFrom.
func (v *DependencyView) SetParents(parents []*DependencyView) {
	v.parents = parents
}

// All returns the union in stable order: own first, then parents in
// insertion order, recursively. Duplicates across diamond-shaped extension
// graphs are not deduped, matching the plain-append semantics of §4.2.
func (v *DependencyView) All() []deps.Dependency {
	result := append([]deps.Dependency(nil), v.own.Items()...)
	return append(result, lo.FlatMap(v.parents, func(p *DependencyView, _ int) []deps.Dependency {
		return p.All()
	})...)
}

// ArtifactView is the analogous "all artifacts" view.
type ArtifactView struct {
	own     *deps.ArtifactSet
	parents []*ArtifactView
}

func NewArtifactView(own *deps.ArtifactSet) *ArtifactView {
	return &ArtifactView{own: own}
}

func (v *ArtifactView) AddParent(parent *ArtifactView) {
	v.parents = append(v.parents, parent)
}

func (v *ArtifactView) SetParents(parents []*ArtifactView) {
	v.parents = parents
}

func (v *ArtifactView) All() []deps.Artifact {
	result := append([]deps.Artifact(nil), v.own.Items()...)
	return append(result, lo.FlatMap(v.parents, func(p *ArtifactView, _ int) []deps.Artifact {
		return p.All()
	})...)
}
