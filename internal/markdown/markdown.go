package markdown

import "strings"

// Escape makes text safe for use inside a Markdown table cell by
// escaping the pipe character, which would otherwise split the cell.
func Escape(text string) string {
	return strings.ReplaceAll(text, "|", `\|`)
}
