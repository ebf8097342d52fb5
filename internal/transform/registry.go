// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package transform implements the artifact transform registry:
// user-supplied conversions between attribute-labeled file sets, matched by
// attribute-container compatibility and executed under a fixed contract.
package transform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/daml-tools/depconf/internal/attributes"
	"github.com/daml-tools/depconf/internal/cachelock"
	"github.com/daml-tools/depconf/internal/cerr"
)

// Transform is a user-supplied conversion unit. OutputAttributes returns
// every output-attribute container it can produce; Registry fans that out
// into one registration row per container at registration time.
type Transform interface {
	ID() string
	InputAttributes() *attributes.Snapshot
	OutputAttributes() []*attributes.Snapshot
	OutputDirectory() string
	Run(input string) error
	GetResult(out *attributes.Snapshot) (string, error)
}

type registration struct {
	transform Transform
	from      *attributes.Snapshot
	to        *attributes.Snapshot
}

// Registry matches requested (from, to) attribute pairs to registered
// transforms and returns an executable callable for the match. Execution
// materializes a file on disk, so it runs under locker to serialize
// concurrent callers transforming into the same cache scope.
type Registry struct {
	rows   []registration
	locker *cachelock.Manager
}

func NewRegistry(locker *cachelock.Manager) *Registry {
	return &Registry{locker: locker}
}

// Register adds one row per declared output-attribute container: the
// transform is instantiated once by the caller, and one registration row is
// generated per declared output-attribute set.
func (r *Registry) Register(t Transform) {
	from := t.InputAttributes()
	for _, to := range t.OutputAttributes() {
		r.rows = append(r.rows, registration{transform: t, from: from, to: to})
	}
}

// Func is the callable getTransform returns: it converts an input file to
// an output file under the registry's execution contract.
type Func func(input string) (string, error)

// GetTransform returns a callable iff some registration R exists such that
// every attribute present in R.from has an equal value in from, and
// likewise for R.to/to (extra attributes on either side are allowed). Ties
// go to the first registration; no match returns nil.
func (r *Registry) GetTransform(from, to *attributes.Snapshot) Func {
	for _, row := range r.rows {
		if from.HasAll(row.from) && to.HasAll(row.to) {
			row := row
			return func(input string) (string, error) {
				return r.execute(row, input)
			}
		}
	}
	return nil
}

func (r *Registry) execute(row registration, input string) (string, error) {
	var output string
	runTransform := func() error {
		if dir := row.transform.OutputDirectory(); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}

		if err := row.transform.Run(input); err != nil {
			return &cerr.TransformFailure{InputFile: input, TransformID: row.transform.ID(), Cause: err}
		}

		result, err := row.transform.GetResult(row.to)
		if err != nil {
			return &cerr.TransformFailure{InputFile: input, TransformID: row.transform.ID(), Cause: err}
		}
		// The source's transform executor checks `output == null || output ==
		// null` — a typo for two distinct conditions, collapsed here into the
		// one check it actually performs.
		if result == "" {
			return &cerr.TransformFailure{
				InputFile:   input,
				TransformID: row.transform.ID(),
				Cause:       fmt.Errorf("no output file created"),
			}
		}
		if _, err := os.Stat(result); err != nil {
			return &cerr.TransformFailure{
				InputFile:   input,
				TransformID: row.transform.ID(),
				Cause:       fmt.Errorf("expected output file %q was not created", result),
			}
		}
		output = result
		return nil
	}

	if err := r.locker.UseCache(context.Background(), row.transform.ID(), runTransform); err != nil {
		return "", err
	}
	return filepath.Clean(output), nil
}
