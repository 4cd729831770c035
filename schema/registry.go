//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package schema

import (
	"errors"
	"fmt"
	"sort"

	"blockmark.de/b/ast"
)

// Default names of the fallback block types.
const (
	DefaultFreeformName     = "core/freeform"
	DefaultUnregisteredName = "core/missing"
)

// Attribute keys of blocks that replace blocks of unknown type.
const (
	OriginalNameKey        = "originalName"
	OriginalContentKey     = "originalContent"
	OriginalUndelimitedKey = "originalUndelimitedContent"
)

// Errors returned by Register.
var (
	ErrDuplicate    = errors.New("block type already registered")
	ErrInvalidName  = errors.New("invalid block type name")
	ErrNoSave       = errors.New("block type has no save function")
	ErrNestedSchema = errors.New("query source without nested attributes")
)

// Registry stores block types by name. It must not be changed while it is
// used for parsing, validating, or serializing. Concurrent readers are safe.
type Registry struct {
	FreeformName     string // Type of literal text between blocks
	UnregisteredName string // Type that replaces blocks of unknown type

	types map[string]*BlockType
	order []string
}

// NewRegistry creates an empty registry with the default fallback names.
func NewRegistry() *Registry {
	return &Registry{
		FreeformName:     DefaultFreeformName,
		UnregisteredName: DefaultUnregisteredName,
		types:            map[string]*BlockType{},
	}
}

// Register adds a new block type.
func (r *Registry) Register(bt *BlockType) error {
	if bt == nil || !IsValidName(bt.Name) {
		name := ""
		if bt != nil {
			name = bt.Name
		}
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if _, found := r.types[bt.Name]; found {
		return fmt.Errorf("%w: %q", ErrDuplicate, bt.Name)
	}
	if bt.Save == nil {
		return fmt.Errorf("%w: %q", ErrNoSave, bt.Name)
	}
	if err := checkAttributes(bt.Attributes); err != nil {
		return fmt.Errorf("%w in %q", err, bt.Name)
	}
	for i, dep := range bt.Deprecated {
		if dep.Save == nil {
			return fmt.Errorf("%w: %q, deprecation %d", ErrNoSave, bt.Name, i)
		}
		if err := checkAttributes(dep.Attributes); err != nil {
			return fmt.Errorf("%w in %q, deprecation %d", err, bt.Name, i)
		}
	}
	for i := range bt.Transforms {
		bt.Transforms[i].BlockName = bt.Name
	}
	if r.types == nil {
		r.types = map[string]*BlockType{}
	}
	r.types[bt.Name] = bt
	r.order = append(r.order, bt.Name)
	return nil
}

func checkAttributes(attrs []Attribute) error {
	for _, a := range attrs {
		if a.Source.Kind != SourceQuery {
			continue
		}
		if len(a.Source.Query) == 0 {
			return fmt.Errorf("%w: attribute %q", ErrNestedSchema, a.Name)
		}
		if err := checkAttributes(a.Source.Query); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister adds block types and panics if one cannot be registered.
func (r *Registry) MustRegister(bts ...*BlockType) {
	for _, bt := range bts {
		if err := r.Register(bt); err != nil {
			panic(err)
		}
	}
}

// Lookup returns the block type of the given name.
func (r *Registry) Lookup(name string) (*BlockType, bool) {
	bt, found := r.types[name]
	return bt, found
}

// Names returns the names of all block types, in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// IsFreeform returns true, if the name is the name of the freeform type.
func (r *Registry) IsFreeform(name string) bool { return name == r.FreeformName }

// IsUnregistered returns true, if the name is the name of the type that
// replaces blocks of unknown type.
func (r *Registry) IsUnregistered(name string) bool { return name == r.UnregisteredName }

// RawTransforms returns all raw transforms, ordered by priority and then by
// registration order.
func (r *Registry) RawTransforms() []RawTransform {
	var result []RawTransform
	for _, name := range r.order {
		result = append(result, r.types[name].Transforms...)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return priority(result[i]) < priority(result[j])
	})
	return result
}

func priority(rt RawTransform) int {
	if rt.Priority == 0 {
		return 10
	}
	return rt.Priority
}

// CreateBlock creates a new block of the given type. Attributes are
// completed with their defaults. If the type is not registered, the given
// values are used as they are.
func (r *Registry) CreateBlock(name string, values map[string]any, inner ...*ast.Block) *ast.Block {
	if bt, found := r.Lookup(name); found {
		return ast.NewBlock(name, bt.NewAttributes(values), inner...)
	}
	return ast.NewBlock(name, ast.AttributesFromMap(values), inner...)
}
