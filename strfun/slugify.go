//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package strfun

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	useUnicode = []*unicode.RangeTable{
		unicode.Letter,
		unicode.Number,
	}
	ignoreUnicode = []*unicode.RangeTable{
		unicode.Mark,
		unicode.Sk,
		unicode.Lm,
	}
)

// Slugify returns a string that can be used as part of an URL or as a
// fragment identifier.
func Slugify(s string) string {
	s = strings.TrimSpace(s)
	result := make([]rune, 0, len(s))
	addDash := false
	for _, r := range norm.NFKD.String(s) {
		if unicode.IsOneOf(useUnicode, r) {
			result = append(result, unicode.ToLower(r))
			addDash = true
		} else if !unicode.IsOneOf(ignoreUnicode, r) && addDash {
			result = append(result, '-')
			addDash = false
		}
	}
	if i := len(result) - 1; i >= 0 && result[i] == '-' {
		result = result[:i]
	}
	return string(result)
}

// UniqueSlugs hands out identifiers that are unique within one document.
type UniqueSlugs struct {
	used Set
}

// Add registers the identifier. If it is already in use, a numeric suffix
// is appended until it is unique.
func (us *UniqueSlugs) Add(id string) string {
	if us.used == nil {
		us.used = NewSet()
	}
	if !us.used.Has(id) {
		us.used.Set(id)
		return id
	}
	prefix := id + "-"
	for count := 1; ; count++ {
		newID := prefix + strconv.Itoa(count)
		if !us.used.Has(newID) {
			us.used.Set(newID)
			return newID
		}
	}
}

// Reserve marks the identifier as used, without changing it.
func (us *UniqueSlugs) Reserve(id string) {
	if us.used == nil {
		us.used = NewSet()
	}
	us.used.Set(id)
}
