//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package strfun provides some string functions.
package strfun

import (
	"strings"
	"unicode/utf8"
)

// CollapseSpace replaces every run of white space by one space character and
// trims the result.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IsBlank returns true, if the string contains only white space.
func IsBlank(s string) bool { return strings.TrimSpace(s) == "" }

// Length returns the number of runes in the given string.
func Length(s string) int { return utf8.RuneCountInString(s) }

// JustifyLeft ensures that the string has a defined length.
func JustifyLeft(s string, maxLen int, pad rune) string {
	if maxLen < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) > maxLen {
		runes = runes[:maxLen]
		runes[maxLen-1] = '‥'
	}

	var sb strings.Builder
	for _, r := range runes {
		sb.WriteRune(r)
	}
	for i := 0; i < maxLen-len(runes); i++ {
		sb.WriteRune(pad)
	}
	return sb.String()
}
