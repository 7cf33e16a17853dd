package templates

import (
	"strconv"
	"strings"
)

// countSummary renders counts as "kind=n" pairs joined by ", ".
func countSummary(counts []Count) string {
	var sb strings.Builder
	for i, c := range counts {
		sb.WriteString(c.Kind)
		sb.WriteByte('=')
		sb.WriteString(strconv.Itoa(c.N))
		if i < len(counts)-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

func indent(prefix, text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
