package report

import (
	"fmt"
	"io"
	"strings"

	"codepolish/internal/analysis"

	"github.com/pmezard/go-difflib/difflib"
)

type MarkdownOptions struct {
	// Diff appends a unified diff between the original and refactored source.
	Diff bool
}

// WriteMarkdown renders a human-readable report for each result.
func WriteMarkdown(w io.Writer, results []*analysis.AnalysisResult, opts MarkdownOptions) error {
	var sb strings.Builder
	sb.WriteString("# Code Quality Report\n")
	for _, r := range results {
		sb.WriteString("\n")
		if err := writeResult(&sb, r, opts); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeResult(sb *strings.Builder, r *analysis.AnalysisResult, opts MarkdownOptions) error {
	fmt.Fprintf(sb, "## %s\n\n", r.FileName)
	if r.RefactoredSource == nil {
		fmt.Fprintf(sb, "Score: **%d** (refactoring skipped)\n\n", r.OriginalScore)
	} else {
		fmt.Fprintf(sb, "Score: **%d** -> **%d**\n\n", r.OriginalScore, r.RefactoredScore)
	}

	sb.WriteString("### Issues\n\n")
	if len(r.Issues) == 0 {
		sb.WriteString("No issues found.\n\n")
	} else {
		sb.WriteString("| Line | Message |\n|---:|---|\n")
		for _, f := range r.Issues {
			fmt.Fprintf(sb, "| %d | %s |\n", f.Line, escapeCell(f.Message))
		}
		sb.WriteString("\n")
	}

	if len(r.AISuggestions) > 0 {
		sb.WriteString("### Suggestions\n\n")
		for _, s := range r.AISuggestions {
			fmt.Fprintf(sb, "- %s\n", s)
		}
		sb.WriteString("\n")
	}

	if opts.Diff && r.RefactoredSource != nil {
		diff, err := UnifiedDiff(r.FileName, r.OriginalSource, *r.RefactoredSource)
		if err != nil {
			return fmt.Errorf("diff %s: %w", r.FileName, err)
		}
		sb.WriteString("### Diff\n\n")
		if diff == "" {
			sb.WriteString("No changes.\n\n")
		} else {
			sb.WriteString("```diff\n")
			sb.WriteString(diff)
			if !strings.HasSuffix(diff, "\n") {
				sb.WriteString("\n")
			}
			sb.WriteString("```\n\n")
		}
	}
	return nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// UnifiedDiff renders the change from original to refactored with three lines
// of context. Identical inputs produce an empty string.
func UnifiedDiff(path, original, refactored string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        splitLines(original),
		B:        splitLines(refactored),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

// splitLines keeps line endings and, unlike difflib.SplitLines, adds no empty
// line after a trailing newline. A missing final newline is supplied so the
// last line still renders on its own row.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		return lines[:len(lines)-1]
	}
	lines[len(lines)-1] += "\n"
	return lines
}
