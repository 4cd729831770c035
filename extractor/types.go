//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package extractor

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"blockmark.de/b/ast"
	"blockmark.de/b/schema"
)

// coerce checks the value against the declared type and the enumeration.
// Values of markup attributes and text are strings; they are converted to
// numbers, if the type demands it.
func coerce(a schema.Attribute, val any) (any, bool) {
	if s, isString := val.(string); isString && isMarkupString(a.Source.Kind) {
		val = convertString(a.Type, s)
	}
	val, ok := coerceType(a.Type, val)
	if !ok {
		return nil, false
	}
	if len(a.Enum) == 0 {
		return val, true
	}
	for _, e := range a.Enum {
		if ast.ValueEqual(e, val) {
			return val, true
		}
	}
	return nil, false
}

func coerceType(typ schema.Type, val any) (any, bool) {
	switch typ {
	case schema.TypeAny:
		return val, true
	case schema.TypeString:
		s, ok := val.(string)
		return s, ok
	case schema.TypeBoolean:
		b, ok := val.(bool)
		return b, ok
	case schema.TypeNumber:
		switch v := val.(type) {
		case float64:
			return v, true
		case int64:
			return float64(v), true
		case int:
			return float64(v), true
		case json.Number:
			f, err := v.Float64()
			return f, err == nil
		}
	case schema.TypeInteger:
		return ast.ToInt(val)
	case schema.TypeArray, schema.TypeRichText:
		arr, ok := val.([]any)
		return arr, ok
	case schema.TypeObject:
		obj, ok := val.(map[string]any)
		return obj, ok
	case schema.TypeNull:
		return nil, val == nil
	}
	return nil, false
}

func isMarkupString(kind schema.SourceKind) bool {
	return kind == schema.SourceAttribute || kind == schema.SourceText
}

// convertString converts a string into a number, if the type is numeric.
// If conversion fails, the string is returned and the type check fails.
func convertString(typ schema.Type, s string) any {
	switch typ {
	case schema.TypeNumber:
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	case schema.TypeInteger:
		if i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return i
		}
	}
	return s
}
