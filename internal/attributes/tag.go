// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package attributes

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// TypeTag is the declared runtime type of an Attribute's value.
type TypeTag int

const (
	TypeString TypeTag = iota
	TypeBool
	TypeInt
	TypeVersion
	TypeNamed
)

func (t TypeTag) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeVersion:
		return "version"
	case TypeNamed:
		return "named"
	default:
		return fmt.Sprintf("TypeTag(%d)", int(t))
	}
}

// Named is a comparable, string-backed value used for attributes whose
// domain is a closed set of tokens, e.g. a "format" attribute with values
// like "JAR" or "CLASSES".
type Named string

// Assignable reports whether v's runtime type matches this tag's declared
// type. Used at insertion time to reject attribute values of the wrong kind.
func (t TypeTag) Assignable(v any) bool {
	switch t {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeBool:
		_, ok := v.(bool)
		return ok
	case TypeInt:
		_, ok := v.(int)
		return ok
	case TypeVersion:
		_, ok := v.(*semver.Version)
		return ok
	case TypeNamed:
		_, ok := v.(Named)
		return ok
	default:
		return false
	}
}
