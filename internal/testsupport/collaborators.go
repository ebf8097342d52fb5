// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package testsupport

import (
	"os"

	"github.com/daml-tools/depconf"
	"github.com/daml-tools/depconf/internal/cachelock"
)

// FakeListenerManager records every broadcast it receives, fulfilling the
// project-wide ListenerManager role in tests.
type FakeListenerManager struct {
	BeforeCalls []*depconf.Incoming
	AfterCalls  []*depconf.Incoming
}

func (f *FakeListenerManager) BeforeResolve(i *depconf.Incoming) {
	f.BeforeCalls = append(f.BeforeCalls, i)
}

func (f *FakeListenerManager) AfterResolve(i *depconf.Incoming) {
	f.AfterCalls = append(f.AfterCalls, i)
}

var _ depconf.ListenerManager = (*FakeListenerManager)(nil)

// FakeProjectFinder serves a fixed map of project path to configuration
// set.
type FakeProjectFinder struct {
	Projects map[string][]*depconf.Configuration
}

func (f *FakeProjectFinder) FindProjectConfigurations(path string) ([]*depconf.Configuration, error) {
	return f.Projects[path], nil
}

var _ depconf.ProjectFinder = (*FakeProjectFinder)(nil)

// FakeMetadataProvider returns a fixed module identity.
type FakeMetadataProvider struct {
	Identity depconf.ModuleIdentity
}

func (f *FakeMetadataProvider) OwningModule() depconf.ModuleIdentity { return f.Identity }

var _ depconf.DependencyMetadataProvider = (*FakeMetadataProvider)(nil)

// FakeComponentMetadataBuilder echoes back the owner and siblings it was
// given as a RootComponent.
type FakeComponentMetadataBuilder struct{}

func (f *FakeComponentMetadataBuilder) BuildRootComponent(owner depconf.ModuleIdentity, siblings []*depconf.Configuration) (depconf.RootComponent, error) {
	return depconf.RootComponent{Identity: owner, Configurations: siblings}, nil
}

var _ depconf.ComponentMetadataBuilder = (*FakeComponentMetadataBuilder)(nil)

// NewConfiguration builds a Configuration wired to fresh fakes for every
// collaborator except the resolver, which the caller supplies.
func NewConfiguration(path, name string, resolver depconf.Resolver) *depconf.Configuration {
	return depconf.NewConfiguration(
		path, name, resolver,
		&FakeListenerManager{},
		&FakeProjectFinder{},
		&FakeMetadataProvider{},
		&FakeComponentMetadataBuilder{},
		cachelock.NewManager(os.TempDir()),
	)
}
