package extractor

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
)

var lineBreakRe = regexp.MustCompile(`\r\n|\n|\r`)

// File is a parsed source file. Callers treat it as read-only; rewrites produce a new File.
type File struct {
	source []byte
	tree   *sitter.Tree
	ext    *Extractor
}

// Source returns the raw bytes the tree was built from.
func (f *File) Source() []byte {
	return f.source
}

// Text returns the source as a string.
func (f *File) Text() string {
	return string(f.source)
}

func (f *File) Root() *sitter.Node {
	return f.tree.RootNode()
}

// Content returns the source text covered by n.
func (f *File) Content(n *sitter.Node) string {
	return n.Content(f.source)
}

// Line returns the one-based line on which n starts.
func (f *File) Line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

// Units returns the routines and types declared in the file.
func (f *File) Units() []*CodeUnit {
	return f.ext.Units(f)
}

// Walk visits every node in document order. Children of a node are skipped
// when fn returns false for it.
func (f *File) Walk(fn func(n *sitter.Node) bool) {
	walk(f.Root(), fn)
}

func walk(n *sitter.Node, fn func(n *sitter.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), fn)
	}
}

// Edit replaces the byte range [Start, End) of a source with Text.
type Edit struct {
	Start uint32
	End   uint32
	Text  string
}

// Rewrite applies edits to the source and parses the result into a new File.
// Edits must not overlap. The receiver is left untouched.
func (f *File) Rewrite(ctx context.Context, edits []Edit) (*File, error) {
	if len(edits) == 0 {
		return f, nil
	}
	out, err := ApplyEdits(f.source, edits)
	if err != nil {
		return nil, err
	}
	return f.ext.Parse(ctx, out)
}

// ApplyEdits returns a copy of source with edits applied.
func ApplyEdits(source []byte, edits []Edit) ([]byte, error) {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	out := make([]byte, 0, len(source))
	var cursor uint32
	for _, e := range sorted {
		if e.Start > e.End || int(e.End) > len(source) {
			return nil, fmt.Errorf("edit [%d,%d) out of range for %d bytes", e.Start, e.End, len(source))
		}
		if e.Start < cursor {
			return nil, fmt.Errorf("edit [%d,%d) overlaps previous edit ending at %d", e.Start, e.End, cursor)
		}
		out = append(out, source[cursor:e.Start]...)
		out = append(out, e.Text...)
		cursor = e.End
	}
	out = append(out, source[cursor:]...)
	return out, nil
}

// CountLines counts line-terminator separated segments of s, ignoring trailing
// empty segments. An empty string counts as one line.
func CountLines(s string) int {
	if s == "" {
		return 1
	}
	segments := lineBreakRe.Split(s, -1)
	n := len(segments)
	for n > 0 && segments[n-1] == "" {
		n--
	}
	return n
}

// LineAt returns the line reported for a match starting at byte offset pos of text:
// the number of segments preceding pos as counted by CountLines, never less than 1.
func LineAt(text string, pos int) int {
	n := CountLines(text[:pos])
	if n < 1 {
		return 1
	}
	return n
}
