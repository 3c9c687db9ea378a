// Package format provides shared text formatting utilities for chat replies
// and terminal output.
package format

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// ansiRegex matches ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// ellipsis is appended to truncated strings.
const ellipsis = "..."

// StripAnsi removes ANSI escape sequences from a string.
func StripAnsi(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// DisplayWidth returns the visible width of a string in columns,
// accounting for wide characters like emojis (which take 2 columns)
// and stripping ANSI escape sequences.
func DisplayWidth(s string) int {
	plain := StripAnsi(s)
	width := 0
	runes := []rune(plain)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		// Emoji presentation sequence: base emoji + U+FE0F (VS16)
		if i+1 < len(runes) && runes[i+1] == '\uFE0F' {
			width += 2
			i++
			continue
		}
		if r == '\uFE0F' {
			continue
		}
		width += runewidth.RuneWidth(r)
	}
	return width
}

// Truncate shortens text to at most maxRunes characters, replacing the cut
// tail with "...". Text that already fits is returned unchanged. Chat
// platforms cap choice names by character count, not display columns.
func Truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}

	target := maxRunes - len(ellipsis)
	if target <= 0 {
		return ellipsis[:max(maxRunes, 0)]
	}

	runes := []rune(s)
	return string(runes[:target]) + ellipsis
}

// PadRight pads a string with spaces to reach the target visible width.
func PadRight(s string, visibleWidth, targetWidth int) string {
	if visibleWidth >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-visibleWidth)
}
