// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package depconf

// FileCollection is a lazy file view: its file set is not computed until
// requested, at which point it drives resolution to ARTIFACTS_RESOLVED.
type FileCollection struct {
	config *Configuration
	spec   DependencySpec
}

// FileCollection returns a lazy view filtered by spec (nil selects every
// dependency).
func (c *Configuration) FileCollection(spec DependencySpec) *FileCollection {
	return &FileCollection{config: c, spec: spec}
}

// Files drives resolution to ARTIFACTS_RESOLVED and returns the matching
// resolved file set.
func (fc *FileCollection) Files() ([]string, error) {
	if err := fc.config.resolveToStateOrLater(stateArtifactsResolved); err != nil {
		return nil, err
	}
	rc := &ResolvedConfiguration{config: fc.config}
	return rc.Files(fc.spec)
}

// BuildDependencies forwards to the owning configuration's build-dependency
// query.
func (fc *FileCollection) BuildDependencies() ([]string, error) {
	return fc.config.BuildDependencies()
}
