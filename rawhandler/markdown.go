//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package rawhandler

import (
	"bytes"
	"regexp"
	"strings"

	gm "github.com/yuin/goldmark"
	gmExt "github.com/yuin/goldmark/extension"

	"blockmark.de/b/dom"
)

var markdown = gm.New(gm.WithExtensions(gmExt.GFM))

var (
	mdBlockPattern  = regexp.MustCompile(`(?m)^(#{1,6}\s|\s*[-*+]\s|\s*\d+[.)]\s|>\s?|` + "```" + `|\|.*\|\s*$)`)
	mdInlinePattern = regexp.MustCompile(`\*\*[^*\n]+\*\*|__[^_\n]+__|\[[^\]\n]+\]\([^)\s]+\)|` + "`[^`\n]+`")
)

// looksLikeMarkdown returns true, if the text contains typical markdown
// block or inline syntax.
func looksLikeMarkdown(text string) bool {
	return mdBlockPattern.MatchString(text) || mdInlinePattern.MatchString(text)
}

// textToHTML converts plain text into markup.
func textToHTML(text string, format TextFormat) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if format == TextMarkdown || (format == TextAuto && looksLikeMarkdown(text)) {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(text), &buf); err == nil {
			return buf.String()
		}
	}
	return plainToHTML(text)
}

var paragraphSep = regexp.MustCompile(`\n[ \t]*\n`)

// plainToHTML converts text into paragraphs. Single line breaks are kept.
func plainToHTML(text string) string {
	text = strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\r", "\n")
	var sb strings.Builder
	for _, para := range paragraphSep.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(strings.ReplaceAll(dom.EscapeText(para), "\n", "<br>"))
		sb.WriteString("</p>")
	}
	return sb.String()
}
