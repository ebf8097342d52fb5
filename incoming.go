// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package depconf

import (
	"github.com/daml-tools/depconf/internal/deps"
	"github.com/daml-tools/depconf/internal/resolve"
)

// Incoming is the read-only "incoming dependencies" façade (SPEC_FULL §6,
// grounded in Gradle's ResolvableDependencies): it exposes this
// configuration's dependency view and resolution result, plus a
// beforeResolve/afterResolve listener registration scoped to this
// configuration alone, distinct from the project-wide ListenerManager
// broadcaster.
type Incoming struct {
	config *Configuration

	beforeResolve []func(*Incoming)
	afterResolve  []func(*Incoming)
}

// Incoming returns this configuration's incoming-dependencies view.
func (c *Configuration) Incoming() *Incoming { return c.incoming }

func (i *Incoming) Dependencies() []deps.Dependency { return i.config.AllDependencies() }

// ResolutionResult exposes the resolved module graph, or nil before any
// resolution has completed.
func (i *Incoming) ResolutionResult() *resolve.ResolutionResult {
	if i.config.cachedResults == nil {
		return nil
	}
	return i.config.cachedResults.Graph
}

// OnBeforeResolve registers a callback invoked strictly before the graph
// resolve call, after the project-wide BeforeResolve broadcast.
func (i *Incoming) OnBeforeResolve(fn func(*Incoming)) {
	i.beforeResolve = append(i.beforeResolve, fn)
}

// OnAfterResolve registers a callback invoked strictly after the graph
// resolve call, after the project-wide AfterResolve broadcast.
func (i *Incoming) OnAfterResolve(fn func(*Incoming)) {
	i.afterResolve = append(i.afterResolve, fn)
}
