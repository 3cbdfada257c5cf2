// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-13
// Last Modified: 2026-10-19

package text

import (
	"testing"
	"unicode/utf8"
)

func TestIndent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "single line",
			in:   "hello",
			want: "    hello",
		},
		{
			name: "multiple lines",
			in:   "a\nb\nc",
			want: "    a\n    b\n    c",
		},
		{
			name: "trailing newline dropped once",
			in:   "a\n\n",
			want: "    a\n    ",
		},
		{
			name: "crlf normalized",
			in:   "a\r\nb\rc",
			want: "    a\n    b\n    c",
		},
		{
			name: "unicode line boundaries",
			in:   "a\vb\fc\x1cd\u0085e\u2028f\u2029",
			want: "    a\n    b\n    c\n    d\n    e\n    f",
		},
		{
			name: "empty content",
			in:   "",
			want: "    ",
		},
		{
			name: "blank line in the middle",
			in:   "a\n\nb",
			want: "    a\n    \n    b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Indent(tt.in, "    ")
			if got != tt.want {
				t.Errorf("Indent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 3); got != "abc..." {
		t.Errorf("Truncate() = %q, want %q", got, "abc...")
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Errorf("Truncate() = %q, want %q", got, "abc")
	}
	if got := Truncate("abc", 0); got != "abc" {
		t.Errorf("Truncate() with n=0 = %q, want %q", got, "abc")
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	// "é" is two bytes; a cut after three bytes would split the second one.
	got := Truncate("éé!", 3)
	if got != "é..." {
		t.Errorf("Truncate() = %q, want %q", got, "é...")
	}
	if !utf8.ValidString(got) {
		t.Errorf("Truncate() returned invalid UTF-8 %q", got)
	}
}
