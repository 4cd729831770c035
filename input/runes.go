//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package input

import "unicode"

// IsSpace returns true if rune is a whitespace, including line endings.
func IsSpace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	case EOS:
		return false
	}
	return unicode.IsSpace(ch)
}

// IsLowerASCII returns true for the letters a-z.
func IsLowerASCII(ch rune) bool { return 'a' <= ch && ch <= 'z' }

// IsDigitASCII returns true for the digits 0-9.
func IsDigitASCII(ch rune) bool { return '0' <= ch && ch <= '9' }
