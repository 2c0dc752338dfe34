package comment

import (
	"testing"

	"github.com/dave/dst"
)

func TestSource(t *testing.T) {
	node := &dst.Ident{Name: "hi"}
	Source(node, "", "area", "pi * r ** 2", "additionalInfo")

	decs := node.Decorations()
	if len(decs.Start) != 2 {
		t.Errorf("Expected 2 comments, got %d", len(decs.Start))
	} else {
		expected := []string{
			"// area renders as: pi * r ** 2",
			"// additionalInfo",
		}
		for i, comment := range decs.Start {
			if comment != expected[i] {
				t.Errorf("Expected %s, got %s", expected[i], comment)
			}
		}
	}

	nodeWithComments := &dst.Ident{Name: "hi", Decs: dst.IdentDecorations{NodeDecs: dst.NodeDecs{Start: []string{"// existing comment"}}}}
	Source(nodeWithComments, "", "x", "1")
	decs = nodeWithComments.Decorations()
	if len(decs.Start) != 3 {
		t.Errorf("Expected 3 comments, got %d", len(decs.Start))
	} else {
		expected := []string{
			"// x renders as: 1",
			"//",
			"// existing comment",
		}
		for i, comment := range decs.Start {
			if comment != expected[i] {
				t.Errorf("Expected %s, got %s", expected[i], comment)
			}
		}
	}
}

func TestWarn(t *testing.T) {
	node := &dst.Ident{Name: "hi"}
	Warn(node, "", "message", "additionalInfo")

	decs := node.Decorations()
	if len(decs.Start) != 2 {
		t.Errorf("Expected 2 comments, got %d", len(decs.Start))
	} else {
		expected := []string{
			"// WARN: message",
			"// additionalInfo",
		}
		for i, comment := range decs.Start {
			if comment != expected[i] {
				t.Errorf("Expected %s, got %s", expected[i], comment)
			}
		}
	}

	nodeWithComments := &dst.Ident{Name: "hi", Decs: dst.IdentDecorations{NodeDecs: dst.NodeDecs{Start: []string{"// existing comment"}}}}
	Warn(nodeWithComments, "", "message", "additionalInfo")
	decs = nodeWithComments.Decorations()
	if len(decs.Start) != 4 {
		t.Errorf("Expected 4 comments, got %d", len(decs.Start))
	} else {
		expected := []string{
			"// WARN: message",
			"// additionalInfo",
			"//",
			"// existing comment",
		}
		for i, comment := range decs.Start {
			if comment != expected[i] {
				t.Errorf("Expected %s, got %s", expected[i], comment)
			}
		}
	}
}
