// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package lenient implements the lenient artifact view: a graph walk that
// tolerates missing external files while surfacing every other failure. A
// single Visitor variant type replaces the base-class hierarchy a
// class-oriented implementation would reach for.
package lenient

import (
	"path/filepath"

	"github.com/daml-tools/depconf/internal/deps"
	"github.com/daml-tools/depconf/internal/resolve"
)

// DependencySpec is a predicate over dependency declarations, used to
// select which parts of a resolved graph a view exposes. A nil spec means
// "every dependency matches" and triggers the walk's fast path.
type DependencySpec func(deps.Dependency) bool

func isSatisfyAll(spec DependencySpec) bool { return spec == nil }

// Visitor is invoked as the walk visits artifacts and file-dependency
// entries. The collecting behaviors below are built via the New*Visitor
// constructors rather than subclassing. OnArtifact receives the artifact's
// already-resolved file so visitors never need to call GetFile themselves.
type Visitor struct {
	OnArtifact func(a *resolve.ResolvedArtifactResult, file string)
	OnFiles    func(componentID *string, files []string)
	WantsFiles bool
}

// NewFilesVisitor collects every visited file path, including the file
// backing each resolved artifact.
func NewFilesVisitor(collect *[]string) *Visitor {
	return &Visitor{
		WantsFiles: true,
		OnFiles: func(_ *string, files []string) {
			*collect = append(*collect, files...)
		},
		OnArtifact: func(a *resolve.ResolvedArtifactResult, file string) {
			*collect = append(*collect, file)
		},
	}
}

// NewArtifactsVisitor collects resolved artifacts without touching files.
func NewArtifactsVisitor(collect *[]*resolve.ResolvedArtifactResult) *Visitor {
	return &Visitor{
		WantsFiles: false,
		OnArtifact: func(a *resolve.ResolvedArtifactResult, file string) {
			*collect = append(*collect, a)
		},
	}
}

// IdentifiedArtifact is one deduplicated entry emitted by the identified
// collecting visitor.
type IdentifiedArtifact struct {
	Kind string // "artifact" or "file"
	ID   string
	File string
}

// NewIdentifiedVisitor implements the "collect artifacts with identifiers"
// dedup rules: skip an already-emitted component-artifact identifier, and
// skip an already-emitted file path (synthesizing an opaque per-path
// identifier when no component id is available, or (componentID, fileName)
// otherwise).
func NewIdentifiedVisitor(collect *[]IdentifiedArtifact) *Visitor {
	seenArtifacts := map[string]bool{}
	seenFiles := map[string]bool{}
	return &Visitor{
		WantsFiles: true,
		OnArtifact: func(a *resolve.ResolvedArtifactResult, file string) {
			if seenArtifacts[a.ID] {
				return
			}
			seenArtifacts[a.ID] = true
			*collect = append(*collect, IdentifiedArtifact{Kind: "artifact", ID: a.ID, File: file})
		},
		OnFiles: func(componentID *string, files []string) {
			for _, f := range files {
				var id string
				if componentID == nil {
					id = "file:" + f
				} else {
					id = *componentID + ":" + filepath.Base(f)
				}
				if seenFiles[f] {
					continue
				}
				seenFiles[f] = true
				*collect = append(*collect, IdentifiedArtifact{Kind: "file", ID: id, File: f})
			}
		},
	}
}
