package comment

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Position formats a location in a document as "path:line:column". Zero
// values are left out.
func Position(path string, line, column int) string {
	b := strings.Builder{}
	b.WriteString(path)
	if line != 0 {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(line))
		if column != 0 {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(column))
		}
	}
	return b.String()
}

// getPosition localizes a position created by Position to the application
// root to keep notes readable. Positions outside of the root are returned
// unchanged.
func getPosition(position, appRoot string) string {
	if position == "" || appRoot == "" {
		return position
	}

	rel, err := filepath.Rel(appRoot, position)
	if err != nil || strings.HasPrefix(rel, "..") {
		return position
	}
	return rel
}
