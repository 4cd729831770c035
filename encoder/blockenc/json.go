//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package blockenc

import (
	"encoding/json"
	"strings"

	"blockmark.de/b/ast"
)

const (
	escHyphen = "\\u002d"
	escQuote  = "\\u0022"
)

// EncodeAttributes returns the attributes as a compact JSON object, keys in
// attribute order. The result never contains "--", so it can be placed
// inside a comment.
func EncodeAttributes(attrs *ast.Attributes) string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	attrs.Each(func(key string, val any) {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		writeJSON(&sb, key)
		sb.WriteByte(':')
		writeJSON(&sb, val)
	})
	sb.WriteByte('}')
	return sb.String()
}

func writeJSON(sb *strings.Builder, val any) {
	data, err := json.Marshal(val)
	if err != nil {
		sb.WriteString("null")
		return
	}
	inString := false
	for i := 0; i < len(data); i++ {
		ch := data[i]
		if !inString {
			inString = ch == '"'
			sb.WriteByte(ch)
			continue
		}
		switch ch {
		case '\\':
			i++
			if data[i] == '"' {
				sb.WriteString(escQuote)
			} else {
				sb.WriteByte(ch)
				sb.WriteByte(data[i])
			}
		case '"':
			inString = false
			sb.WriteByte(ch)
		case '-':
			if i+1 < len(data) && data[i+1] == '-' {
				sb.WriteString(escHyphen)
				sb.WriteString(escHyphen)
				i++
			} else {
				sb.WriteByte(ch)
			}
		default:
			sb.WriteByte(ch)
		}
	}
}
