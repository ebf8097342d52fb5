// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package attributes

import (
	"strings"

	"oras.land/oras-go/v2/registry"
)

// ArtifactRef is a registry/repository/reference triple identifying an
// artifact stored in an OCI-style registry, used by external-module
// dependencies whose coordinates name an image or blob rather than a file
// path.
type ArtifactRef struct {
	Registry   string
	Repository string
	Reference  string
}

// ParseArtifactRef parses a "[oci://]registry/repository[:tag|@digest]"
// coordinate. It accepts a leading "oci://" scheme for compatibility with
// how such coordinates are usually written in a manifest.
func ParseArtifactRef(uri string) (ArtifactRef, error) {
	ref, err := registry.ParseReference(strings.TrimPrefix(uri, "oci://"))
	if err != nil {
		return ArtifactRef{}, err
	}
	return ArtifactRef{Registry: ref.Registry, Repository: ref.Repository, Reference: ref.Reference}, nil
}

// String renders the ref back into its canonical "oci://" form.
func (r ArtifactRef) String() string {
	base := "oci://" + r.Registry + "/" + r.Repository
	switch {
	case r.Reference == "":
		return base
	case strings.Contains(r.Reference, ":"):
		return base + "@" + r.Reference
	default:
		return base + ":" + r.Reference
	}
}

// tryParseArtifactRef parses s as an OCI artifact reference, reporting
// whether it is one. Values not carrying the "oci://" scheme are left to
// equalValues's plain string comparison rather than risking a false
// positive parse of an unrelated colon-containing string.
func tryParseArtifactRef(s string) (ArtifactRef, bool) {
	if !strings.HasPrefix(s, "oci://") {
		return ArtifactRef{}, false
	}
	ref, err := ParseArtifactRef(s)
	if err != nil {
		return ArtifactRef{}, false
	}
	return ref, true
}
