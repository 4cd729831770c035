//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package encoder

import "blockmark.de/b/schema"

// DefaultSeparator is placed between adjacent delimited sibling blocks.
const DefaultSeparator = "\n\n"

// Environment specifies all data and functions that affects encoding.
type Environment struct {
	Registry  *schema.Registry // Block types; if nil, an empty registry is used
	Separator string           // Separator of sibling blocks; empty means default
	Indent    string           // Indentation for encodings that support it
}

// GetRegistry returns the registry, never nil.
func (env *Environment) GetRegistry() *schema.Registry {
	if env != nil && env.Registry != nil {
		return env.Registry
	}
	return emptyRegistry
}

var emptyRegistry = schema.NewRegistry()

// GetSeparator returns the separator of sibling blocks.
func (env *Environment) GetSeparator() string {
	if env != nil && env.Separator != "" {
		return env.Separator
	}
	return DefaultSeparator
}
