// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package composite_test

import (
	"testing"

	"github.com/daml-tools/depconf/internal/composite"
	"github.com/daml-tools/depconf/internal/deps"
	"github.com/stretchr/testify/assert"
)

func TestDependencyViewExtensionOrder(t *testing.T) {
	// A owns d1; B extends A and owns d2. B.All() == [d2, d1] (spec §8 scenario 1).
	d1 := &deps.ExternalModuleDependency{Group: "g", Module: "d1"}
	d2 := &deps.ExternalModuleDependency{Group: "g", Module: "d2"}

	aOwn := deps.NewDependencySet()
	aOwn.Add(d1)
	aView := composite.NewDependencyView(aOwn)

	bOwn := deps.NewDependencySet()
	bOwn.Add(d2)
	bView := composite.NewDependencyView(bOwn)
	bView.AddParent(aView)

	assert.Equal(t, []deps.Dependency{d2, d1}, bView.All())
}

func TestDependencyViewRecursesThroughMultipleParents(t *testing.T) {
	d1 := &deps.ExternalModuleDependency{Group: "g", Module: "d1"}
	d2 := &deps.ExternalModuleDependency{Group: "g", Module: "d2"}
	d3 := &deps.ExternalModuleDependency{Group: "g", Module: "d3"}

	gp := composite.NewDependencyView(setOf(d1))
	parent := composite.NewDependencyView(setOf(d2))
	parent.AddParent(gp)
	child := composite.NewDependencyView(setOf(d3))
	child.AddParent(parent)

	assert.Equal(t, []deps.Dependency{d3, d2, d1}, child.All())
}

func setOf(ds ...deps.Dependency) *deps.DependencySet {
	s := deps.NewDependencySet()
	for _, d := range ds {
		s.Add(d)
	}
	return s
}
