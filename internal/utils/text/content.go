// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-13
// Last Modified: 2026-10-19

// Package text holds small string helpers shared by the migration code.
package text

import (
	"strings"
	"unicode/utf8"
)

// lineBreaks maps every line boundary a text body may use to "\n".
var lineBreaks = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\v", "\n",
	"\f", "\n",
	"\x1c", "\n",
	"\x1d", "\n",
	"\x1e", "\n",
	"\u0085", "\n",
	"\u2028", "\n",
	"\u2029", "\n",
)

// Indent prefixes every line of s with prefix.
// Line boundaries (CRLF, CR, vertical tab, form feed, the file/group/record
// separators, NEL and the Unicode line and paragraph separators) become LF and
// a single trailing newline is dropped, so "a\nb\n" becomes "    a\n    b".
// Empty input yields prefix.
func Indent(s, prefix string) string {
	s = lineBreaks.Replace(s)
	s = strings.TrimSuffix(s, "\n")
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}

// Truncate shortens s to at most n bytes, appending "..." when cut.
// The cut never splits a multi-byte rune.
func Truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
