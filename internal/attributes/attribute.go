// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package attributes

// Attribute is a typed, name-keyed tag used to match consumer requirements
// against artifact-producer capabilities and to select transforms.
type Attribute struct {
	Name string
	Type TypeTag
}

func Of(name string, tag TypeTag) Attribute {
	return Attribute{Name: name, Type: tag}
}

func StringAttribute(name string) Attribute { return Of(name, TypeString) }
func NamedAttribute(name string) Attribute  { return Of(name, TypeNamed) }
