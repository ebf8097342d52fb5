// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package depconf_test

// scenario_test.go exercises the six end-to-end scenarios spec §8 names,
// each against the public API with the testsupport fakes standing in for
// the external Resolver/listener collaborators.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/daml-tools/depconf"
	"github.com/daml-tools/depconf/internal/attributes"
	"github.com/daml-tools/depconf/internal/cachelock"
	"github.com/daml-tools/depconf/internal/cerr"
	"github.com/daml-tools/depconf/internal/deps"
	"github.com/daml-tools/depconf/internal/testsupport"
	"github.com/daml-tools/depconf/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 1: extension order, single resolve per configuration, and
// observed-parent propagation.
func TestScenarioExtensionOrderAndSingleResolve(t *testing.T) {
	resolver := testsupport.NewFakeResolver()
	api := testsupport.NewConfiguration("api", "api", resolver)
	impl := testsupport.NewConfiguration("implementation", "implementation", resolver)

	require.NoError(t, api.AddDependency(&deps.ExternalModuleDependency{Group: "g", Module: "core", Constraint: "1.0"}))
	require.NoError(t, impl.AddDependency(&deps.ExternalModuleDependency{Group: "g", Module: "util", Constraint: "2.0"}))
	require.NoError(t, impl.ExtendsFrom(api))

	rc, err := impl.ResolvedConfiguration()
	require.NoError(t, err)
	require.NoError(t, rc.RethrowFailure())

	files, err := rc.Files(nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/cache/g:util:2.0.jar", "/cache/g:core:1.0.jar"}, files)

	// A single resolver call resolved the whole hierarchy; api itself was
	// never directly resolved but is now observed at ARTIFACTS_RESOLVED, the
	// state impl was resolved to.
	assert.Equal(t, 1, resolver.GraphCalls)
	assert.Equal(t, "UNRESOLVED", api.State())
	assert.Equal(t, "ARTIFACTS_RESOLVED", impl.State())
}

// Scenario 2: mutating an already-observed parent is rejected, except for
// STRATEGY-classified mutations.
func TestScenarioMutationAfterObservationRejectedExceptStrategy(t *testing.T) {
	resolver := testsupport.NewFakeResolver()
	api := testsupport.NewConfiguration("api", "api", resolver)
	impl := testsupport.NewConfiguration("implementation", "implementation", resolver)
	require.NoError(t, impl.ExtendsFrom(api))

	_, err := impl.ResolvedConfiguration()
	require.NoError(t, err)

	err = api.AddDependency(&deps.ExternalModuleDependency{Group: "g", Module: "late"})
	assert.Error(t, err)
	var mutErr *cerr.UserMutationError
	assert.True(t, errors.As(err, &mutErr))

	require.NoError(t, api.ResolutionStrategy().Force(deps.ExcludeRule{Group: "g", Module: "pin"}))
	assert.Len(t, api.ResolutionStrategy().ForcedModules(), 1)
}

// Scenario 3: a cyclic extendsFrom is rejected and leaves both
// configurations' hierarchies unchanged.
func TestScenarioCyclicExtendsFromRejectedAndSetsUnchanged(t *testing.T) {
	resolver := testsupport.NewFakeResolver()
	a := testsupport.NewConfiguration("a", "a", resolver)
	b := testsupport.NewConfiguration("b", "b", resolver)
	require.NoError(t, b.ExtendsFrom(a))

	beforeA := a.Hierarchy()
	beforeB := b.Hierarchy()

	err := a.ExtendsFrom(b)
	assert.Error(t, err)

	assert.Equal(t, beforeA, a.Hierarchy())
	assert.Equal(t, beforeB, b.Hierarchy())
}

// Scenario 4: a default-dependency action only fires when the own set is
// still empty at resolve time, and re-resolving without further mutation is
// a no-op that reuses the cached results.
func TestScenarioDefaultDependenciesAndNoOpReResolve(t *testing.T) {
	resolver := testsupport.NewFakeResolver()
	c := testsupport.NewConfiguration("api", "api", resolver)

	fallback := &deps.ExternalModuleDependency{Group: "g", Module: "fallback", Constraint: "1.0"}
	require.NoError(t, c.DefaultDependencies(func(cfg *depconf.Configuration) error {
		return cfg.AddDependency(fallback)
	}))

	rc, err := c.ResolvedConfiguration()
	require.NoError(t, err)
	assert.Equal(t, []deps.Dependency{fallback}, c.Dependencies())
	assert.Equal(t, 1, resolver.GraphCalls)
	assert.Equal(t, 1, resolver.ArtifactCalls)

	// Re-resolve without mutating: both phases are no-ops, same cache.
	rc2, err := c.ResolvedConfiguration()
	require.NoError(t, err)
	assert.Same(t, rc.ResolutionResult(), rc2.ResolutionResult())
	assert.Equal(t, 1, resolver.GraphCalls)
	assert.Equal(t, 1, resolver.ArtifactCalls)

	// A configuration whose own set is already non-empty never runs its
	// default action.
	other := testsupport.NewConfiguration("other", "other", resolver)
	ran := false
	require.NoError(t, other.DefaultDependencies(func(cfg *depconf.Configuration) error {
		ran = true
		return nil
	}))
	require.NoError(t, other.AddDependency(&deps.ExternalModuleDependency{Group: "g", Module: "explicit"}))
	_, err = other.ResolvedConfiguration()
	require.NoError(t, err)
	assert.False(t, ran)
}

// Scenario 5: a transform chain is composed by the caller from two
// sequential getTransform lookups, each using the attributes the prior
// step's output actually carries.
func TestScenarioTransformChainComposition(t *testing.T) {
	format := attributes.StringAttribute("format")

	aar := newTestSnapshot(t, format, "aar")
	jar := newTestSnapshot(t, format, "jar")
	classes := newTestSnapshot(t, format, "classes")

	work := t.TempDir()
	jarOut := filepath.Join(work, "out.jar")
	classesOut := filepath.Join(work, "classes")

	reg := transform.NewRegistry(cachelock.NewManager(t.TempDir()))
	reg.Register(&fakeChainTransform{id: "unzip-aar", from: aar, to: jar, output: jarOut})
	reg.Register(&fakeChainTransform{id: "explode-jar", from: jar, to: classes, output: classesOut})

	toJar := reg.GetTransform(aar, jar)
	require.NotNil(t, toJar)
	jarPath, err := toJar("/cache/lib.aar")
	require.NoError(t, err)
	assert.Equal(t, jarOut, jarPath)

	toClasses := reg.GetTransform(jar, classes)
	require.NotNil(t, toClasses)
	classesPath, err := toClasses(jarPath)
	require.NoError(t, err)
	assert.Equal(t, classesOut, classesPath)

	// No direct aar->classes registration exists; chaining is the caller's
	// responsibility, not the registry's.
	assert.Nil(t, reg.GetTransform(aar, classes))
}

// Scenario 6: an external-module artifact whose file fails to resolve is
// dropped from Artifacts() under the ignore-missing-external filter, and
// its absence alone does not mark the resolution as errored.
func TestScenarioLenientArtifactFilterDropsMissingExternal(t *testing.T) {
	resolver := testsupport.NewFakeResolver()
	resolver.ArtifactFile = func(id string) (string, error) {
		if id == "g:missing:1.0" {
			return "", cerr.NewArtifactResolveFailure(id, errors.New("404 not found"))
		}
		return "/cache/" + id + ".jar", nil
	}

	c := testsupport.NewConfiguration("api", "api", resolver)
	require.NoError(t, c.AddDependency(&deps.ExternalModuleDependency{Group: "g", Module: "present", Constraint: "1.0"}))
	require.NoError(t, c.AddDependency(&deps.ExternalModuleDependency{Group: "g", Module: "missing", Constraint: "1.0"}))

	rc, err := c.ResolvedConfiguration()
	require.NoError(t, err)
	assert.False(t, rc.HasError())

	artifacts, err := rc.Artifacts(nil)
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	file, err := artifacts[0].GetFile()
	require.NoError(t, err)
	assert.Equal(t, "/cache/g:present:1.0.jar", file)

	// Files() has no ignore-missing-external leniency: the same gap
	// propagates as an error there.
	_, err = rc.Files(nil)
	assert.Error(t, err)
}

func newTestSnapshot(t *testing.T, attr attributes.Attribute, value string) *attributes.Snapshot {
	t.Helper()
	c := attributes.NewContainer(nil)
	require.NoError(t, c.Put(attr, value))
	return c.AsImmutable()
}

// fakeChainTransform is a minimal Transform that writes its declared output
// path on Run, enough to exercise registry matching and chaining against a
// real file (the registry's execute contract stats the result on disk).
type fakeChainTransform struct {
	id     string
	from   *attributes.Snapshot
	to     *attributes.Snapshot
	output string
}

func (f *fakeChainTransform) ID() string                              { return f.id }
func (f *fakeChainTransform) InputAttributes() *attributes.Snapshot    { return f.from }
func (f *fakeChainTransform) OutputAttributes() []*attributes.Snapshot { return []*attributes.Snapshot{f.to} }
func (f *fakeChainTransform) OutputDirectory() string                  { return filepath.Dir(f.output) }
func (f *fakeChainTransform) Run(input string) error {
	return os.WriteFile(f.output, []byte(input), 0o644)
}
func (f *fakeChainTransform) GetResult(out *attributes.Snapshot) (string, error) {
	return f.output, nil
}

var _ transform.Transform = (*fakeChainTransform)(nil)
