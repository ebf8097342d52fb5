// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package attributes

import (
	"fmt"
	"sort"
	"strings"
)

// EMPTY is the process-wide shared immutable container with no entries:
// initialized once here and shared by every caller that needs an empty
// attribute set.
var EMPTY = &Snapshot{values: map[string]entry{}}

type entry struct {
	attr  Attribute
	value any
}

// MutationHook is invoked before every insertion into a mutable Container.
// The owning configuration supplies a closure that runs its own
// validateMutation(ATTRIBUTES) check.
type MutationHook func() error

// Container is the mutable form of an attribute mapping. Values are
// lazily stored; the zero value is ready to use once given a hook.
type Container struct {
	hook   MutationHook
	values map[string]entry
}

func NewContainer(hook MutationHook) *Container {
	return &Container{hook: hook}
}

// Put inserts or overwrites the value for attr. It rejects a nil value, a
// value whose runtime type doesn't match attr.Type, and a name collision
// with an existing attribute of a different type.
func (c *Container) Put(attr Attribute, value any) error {
	if value == nil {
		return fmt.Errorf("attribute %q: null values are not allowed", attr.Name)
	}
	if !attr.Type.Assignable(value) {
		return fmt.Errorf("attribute %q: value of type %T is not assignable to declared type %s", attr.Name, value, attr.Type)
	}
	if existing, ok := c.values[attr.Name]; ok && existing.attr.Type != attr.Type {
		return fmt.Errorf("attribute %q already exists with type %s, cannot redeclare it with type %s", attr.Name, existing.attr.Type, attr.Type)
	}
	if c.hook != nil {
		if err := c.hook(); err != nil {
			return err
		}
	}
	if c.values == nil {
		c.values = make(map[string]entry)
	}
	c.values[attr.Name] = entry{attr: attr, value: value}
	return nil
}

// Get returns the value stored for a given attribute name, if any.
func (c *Container) Get(name string) (any, bool) {
	e, ok := c.values[name]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Keys returns the attributes currently held, in no particular order.
func (c *Container) Keys() []Attribute {
	keys := make([]Attribute, 0, len(c.values))
	for _, e := range c.values {
		keys = append(keys, e.attr)
	}
	return keys
}

// AsImmutable returns a snapshot of the current contents. An empty
// container's snapshot is the shared EMPTY singleton.
func (c *Container) AsImmutable() *Snapshot {
	if len(c.values) == 0 {
		return EMPTY
	}
	return &Snapshot{values: c.values}
}

func (c *Container) String() string {
	return format(c.values)
}

// Snapshot is the immutable form of an attribute mapping.
type Snapshot struct {
	values map[string]entry
}

// AsImmutable is idempotent: a Snapshot's own snapshot is itself.
func (s *Snapshot) AsImmutable() *Snapshot { return s }

func (s *Snapshot) Get(name string) (any, bool) {
	e, ok := s.values[name]
	if !ok {
		return nil, false
	}
	return e.value, true
}

func (s *Snapshot) Keys() []Attribute {
	keys := make([]Attribute, 0, len(s.values))
	for _, e := range s.values {
		keys = append(keys, e.attr)
	}
	return keys
}

// HasAll reports whether every attribute in required has an equal value in
// s: presence of extra attributes in s is allowed. This is the predicate
// the transform registry matches on.
func (s *Snapshot) HasAll(required *Snapshot) bool {
	for name, want := range required.values {
		got, ok := s.values[name]
		if !ok || got.attr.Type != want.attr.Type || !equalValues(got.value, want.value) {
			return false
		}
	}
	return true
}

// equalValues compares two attribute values for the exact-match semantics
// transforms rely on. An "oci://"-formatted string is parsed into its
// registry/repository/reference parts and compared structurally, so a
// differently-formatted but equivalent reference (e.g. a digest written
// with or without a redundant tag) still matches; everything else falls
// back to stringified comparison (sufficient for *semver.Version, which
// formats deterministically).
func equalValues(a, b any) bool {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			if aRef, ok := tryParseArtifactRef(as); ok {
				if bRef, ok := tryParseArtifactRef(bs); ok {
					return aRef == bRef
				}
			}
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func (s *Snapshot) String() string { return format(s.values) }

func format(values map[string]entry) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", name, values[name].value)
	}
	b.WriteByte('}')
	return b.String()
}

// errNotAllowed is returned by a Snapshot's Put, which never succeeds.
var errNotAllowed = fmt.Errorf("not allowed: attribute container is immutable")

// Put on a Snapshot always fails: an immutable container cannot be mutated.
func (s *Snapshot) Put(Attribute, any) error { return errNotAllowed }
