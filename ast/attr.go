//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package ast

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"sort"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Attributes store the attribute values of a block. Keys retain their
// insertion order. Values are JSON-like: string, float64, int64, bool, nil,
// []any, and map[string]any.
type Attributes struct {
	m *linkedhashmap.Map
}

// NewAttributes creates an empty attribute map.
func NewAttributes() *Attributes { return &Attributes{m: linkedhashmap.New()} }

// AttributesFromMap creates attributes from a map, keys are sorted by the
// order of the given key list. Keys not in the list are ignored. Without a
// key list, all keys are used in sorted order.
func AttributesFromMap(m map[string]any, keys ...string) *Attributes {
	if len(keys) == 0 {
		keys = make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}
	a := NewAttributes()
	for _, k := range keys {
		if v, ok := m[k]; ok {
			a.Set(k, v)
		}
	}
	return a
}

// IsEmpty returns true if there are no attributes.
func (a *Attributes) IsEmpty() bool { return a == nil || a.m == nil || a.m.Empty() }

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	if a.IsEmpty() {
		return 0
	}
	return a.m.Size()
}

// Get returns the attribute value of the given key and a succes value.
func (a *Attributes) Get(key string) (any, bool) {
	if a.IsEmpty() {
		return nil, false
	}
	return a.m.Get(key)
}

// GetString returns the value of the given key, if it is a string.
func (a *Attributes) GetString(key string) string {
	if v, ok := a.Get(key); ok {
		if s, ok2 := v.(string); ok2 {
			return s
		}
	}
	return ""
}

// GetBool returns the value of the given key, if it is a boolean.
func (a *Attributes) GetBool(key string) bool {
	if v, ok := a.Get(key); ok {
		if b, ok2 := v.(bool); ok2 {
			return b
		}
	}
	return false
}

// GetInt returns the value of the given key as an integer. Float values
// without fractional part are converted.
func (a *Attributes) GetInt(key string) (int64, bool) {
	v, ok := a.Get(key)
	if !ok {
		return 0, false
	}
	return ToInt(v)
}

// ToInt converts a numeric attribute value to an int64. Fractions and
// values outside the range of int64 are rejected.
func ToInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if n == math.Trunc(n) && n >= math.MinInt64 && n < -math.MinInt64 {
			return int64(n), true
		}
	}
	return 0, false
}

// Set changes the attribute that a given key has now a given value.
func (a *Attributes) Set(key string, value any) *Attributes {
	if a == nil {
		a = NewAttributes()
	} else if a.m == nil {
		a.m = linkedhashmap.New()
	}
	a.m.Put(key, value)
	return a
}

// Remove the key from the attributes.
func (a *Attributes) Remove(key string) {
	if !a.IsEmpty() {
		a.m.Remove(key)
	}
}

// Keys returns all keys in insertion order.
func (a *Attributes) Keys() []string {
	if a.IsEmpty() {
		return nil
	}
	keys := a.m.Keys()
	result := make([]string, len(keys))
	for i, k := range keys {
		result[i] = k.(string)
	}
	return result
}

// Each calls fn for every key/value pair in insertion order.
func (a *Attributes) Each(fn func(key string, value any)) {
	if a.IsEmpty() {
		return
	}
	a.m.Each(func(k, v interface{}) { fn(k.(string), v) })
}

// Map returns the attributes as an unordered map.
func (a *Attributes) Map() map[string]any {
	result := make(map[string]any, a.Len())
	a.Each(func(k string, v any) { result[k] = v })
	return result
}

// Clone returns a duplicate of the attribute.
func (a *Attributes) Clone() *Attributes {
	if a == nil {
		return nil
	}
	result := NewAttributes()
	a.Each(func(k string, v any) { result.Set(k, CloneValue(v)) })
	return result
}

// Equal returns true, if both attribute maps contain the same keys with
// equal values. The order of keys is not relevant.
func (a *Attributes) Equal(o *Attributes) bool {
	if a.Len() != o.Len() {
		return false
	}
	equal := true
	a.Each(func(k string, v any) {
		if !equal {
			return
		}
		ov, ok := o.Get(k)
		equal = ok && ValueEqual(v, ov)
	})
	return equal
}

// CloneValue returns a deep copy of a JSON-like value.
func CloneValue(v any) any {
	switch val := v.(type) {
	case []any:
		result := make([]any, len(val))
		for i, e := range val {
			result[i] = CloneValue(e)
		}
		return result
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, e := range val {
			result[k] = CloneValue(e)
		}
		return result
	}
	return v
}

// ValueEqual compares two JSON-like values. Numbers are compared by value,
// independent of their Go type.
func ValueEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok2 := toFloat(b)
		return ok2 && fa == fb
	}
	switch va := a.(type) {
	case []any:
		vb, ok := b.([]any)
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if !ValueEqual(va[i], vb[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		vb, ok := b.(map[string]any)
		if !ok || len(va) != len(vb) {
			return false
		}
		for k, e := range va {
			f, found := vb[k]
			if !found || !ValueEqual(e, f) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

// MarshalJSON encodes the attributes as a JSON object, keys in insertion
// order. HTML characters are not escaped.
func (a *Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	buf.WriteByte('{')
	var err error
	first := true
	a.Each(func(k string, v any) {
		if err != nil {
			return
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err = enc.Encode(k); err != nil {
			return
		}
		buf.Truncate(buf.Len() - 1) // Encode appends a newline
		buf.WriteByte(':')
		if err = enc.Encode(v); err == nil {
			buf.Truncate(buf.Len() - 1)
		}
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
