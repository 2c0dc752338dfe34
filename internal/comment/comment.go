package comment

import (
	"fmt"

	"github.com/dave/dst"
)

const (
	SourceHeader string = "renders as"
	WarnHeader   string = "WARN"
)

// Source prepends a comment to the node showing the source the generated
// expression renders as. The position is the location of the expression in
// its document and is only used for the console notes.
func Source(node dst.Node, position, name, source string, additionalInfo ...string) {
	comments := []string{
		fmt.Sprintf("// %s %s: %s", name, SourceHeader, source),
	}
	for _, info := range additionalInfo {
		comments = append(comments, fmt.Sprintf("// %s", info))
	}

	prepend(node, comments)
	printer.Add(position, SourceHeader, name+" = "+source, additionalInfo...)
}

// Warn prepends a warning comment to the node and records it for the console.
// The message is the main comment, and additionalInfo is a list of optional
// comments that will be printed on new lines below the main comment.
func Warn(node dst.Node, position, message string, additionalInfo ...string) {
	comments := []string{
		fmt.Sprintf("// %s: %s", WarnHeader, message),
	}
	for _, info := range additionalInfo {
		comments = append(comments, fmt.Sprintf("// %s", info))
	}

	prepend(node, comments)
	printer.Add(position, WarnHeader, message, additionalInfo...)
}

func prepend(node dst.Node, comments []string) {
	decs := node.Decorations()
	if len(decs.Start) > 0 {
		comments = append(comments, "//")
	}
	decs.Start.Prepend(comments...)
}
