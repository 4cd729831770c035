//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package cmd

import (
	_ "blockmark.de/b/encoder/blockenc" // Allow to use block encoder.
	_ "blockmark.de/b/encoder/jsonenc"  // Allow to use JSON encoder.
	_ "blockmark.de/b/encoder/sexprenc" // Allow to use sexpr encoder.
	_ "blockmark.de/b/encoder/textenc"  // Allow to use text encoder.
	_ "blockmark.de/b/rawhandler"       // Allow to parse HTML, markdown, and plain text.
)
