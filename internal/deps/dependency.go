// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package deps holds the dependency and artifact declaration types a
// configuration aggregates: opaque, copyable declarations plus the ordered
// collections that hold them.
package deps

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Dependency is an opaque declaration with an identity and a copy operation
// that produces an independent equal instance.
type Dependency interface {
	ID() string
	Copy() Dependency
}

// FileCollectionDependency is the file-collection dependency subtype named
// in the data model: it exposes a literal file set alongside its build
// dependencies instead of resolving through a repository.
type FileCollectionDependency interface {
	Dependency
	Files() []string
	BuildDependencyTasks() []string
}

// ExternalModuleDependency is a group/module/version-constraint declaration,
// resolved by the external Resolver against a repository.
type ExternalModuleDependency struct {
	Group      string
	Module     string
	Constraint string
	Transitive bool
}

func (d *ExternalModuleDependency) ID() string {
	return fmt.Sprintf("%s:%s:%s", d.Group, d.Module, d.Constraint)
}

func (d *ExternalModuleDependency) Copy() Dependency {
	cp := *d
	return &cp
}

// Satisfies reports whether candidate meets this dependency's version
// constraint. The constraint string follows Masterminds/semver/v3's range
// syntax ("^1.2.0", ">=1.0.0 <2.0.0", an exact "1.2.3", etc.), matching how
// resolution-strategy forcing and exclude rules narrow a module's acceptable
// versions in the source this spec was distilled from.
func (d *ExternalModuleDependency) Satisfies(candidate *semver.Version) (bool, error) {
	c, err := semver.NewConstraint(d.Constraint)
	if err != nil {
		return false, fmt.Errorf("dependency %s: invalid version constraint %q: %w", d.ID(), d.Constraint, err)
	}
	return c.Check(candidate), nil
}

// LocalFileDependency is a literal path set contributed directly by the
// caller, satisfying FileCollectionDependency.
type LocalFileDependency struct {
	Name       string
	Paths      []string
	BuildTasks []string
}

func (d *LocalFileDependency) ID() string { return "files:" + d.Name }

func (d *LocalFileDependency) Copy() Dependency {
	cp := &LocalFileDependency{
		Name:       d.Name,
		Paths:      append([]string(nil), d.Paths...),
		BuildTasks: append([]string(nil), d.BuildTasks...),
	}
	return cp
}

func (d *LocalFileDependency) Files() []string              { return d.Paths }
func (d *LocalFileDependency) BuildDependencyTasks() []string { return d.BuildTasks }

var (
	_ Dependency               = (*ExternalModuleDependency)(nil)
	_ FileCollectionDependency = (*LocalFileDependency)(nil)
)
