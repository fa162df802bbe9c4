package tree

import "strings"

const (
	continuationMarker = "│   "
	branchMarker       = "├── "
	lineBreak          = "\n"
)

// Render lists the entries under rootPath, one per line, ordered per
// directory and indented by nesting level. The root itself is not part of the
// output. Entries deeper than Options.DepthLimit are left out while their
// ancestors are kept.
func Render(rootPath string, options Options) string {
	var builder strings.Builder
	Walk(rootPath, options, func(entry Entry) bool {
		if options.DepthLimit > 0 && entry.Level > options.DepthLimit {
			return false
		}
		builder.WriteString(LinePrefix(entry.Level))
		builder.WriteString(entry.Name)
		builder.WriteString(lineBreak)
		return true
	})
	return builder.String()
}

// LinePrefix returns the indentation for an entry at level. Direct children
// of the root carry no prefix.
func LinePrefix(level int) string {
	if level <= 1 {
		return ""
	}
	return strings.Repeat(continuationMarker, level-2) + branchMarker
}
