package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"codepolish/internal/analysis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *analysis.AnalysisResult {
	refactored := "class A {\n    void m() {\n        logger.info(\"x\");\n    }\n}\n"
	return &analysis.AnalysisResult{
		FileName:         "A.java",
		OriginalSource:   "class A {\n    void m() {\n        System.out.println(\"x\");\n    }\n}\n",
		OriginalScore:    95,
		Issues:           []analysis.Finding{{Line: 4, Message: analysis.MsgConsoleOutput}},
		AISuggestions:    []string{"Use a logger | not stdout"},
		RefactoredSource: &refactored,
		RefactoredScore:  100,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(sampleResult()))

	unparseable := &analysis.AnalysisResult{
		FileName:       "B.java",
		OriginalSource: "class {",
		Issues:         []analysis.Finding{{Line: 0, Message: analysis.MsgUnparseable}},
		AISuggestions:  []string{"Parsing failed."},
	}
	require.NoError(t, Validate(unparseable))

	bad := sampleResult()
	bad.RefactoredScore = 140
	assert.Error(t, Validate(bad))

	missingArrays := sampleResult()
	missingArrays.Issues = nil
	assert.Error(t, Validate(missingArrays), "issues must be an array, never null")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []*analysis.AnalysisResult{sampleResult()}))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "A.java", decoded[0]["fileName"])
	assert.EqualValues(t, 100, decoded[0]["refactoredScore"])

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, []*analysis.AnalysisResult{sampleResult()}, MarkdownOptions{Diff: true}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# Code Quality Report\n"))
	assert.Contains(t, out, "## A.java")
	assert.Contains(t, out, "Score: **95** -> **100**")
	assert.Contains(t, out, "| 4 | "+analysis.MsgConsoleOutput+" |")
	assert.Contains(t, out, `- Use a logger | not stdout`)
	assert.Contains(t, out, "```diff\n--- a/A.java\n+++ b/A.java\n")
	assert.Contains(t, out, "-        System.out.println(\"x\");\n+        logger.info(\"x\");\n")

	buf.Reset()
	require.NoError(t, WriteMarkdown(&buf, []*analysis.AnalysisResult{sampleResult()}, MarkdownOptions{}))
	assert.NotContains(t, buf.String(), "### Diff")
}

func TestUnifiedDiff(t *testing.T) {
	diff, err := UnifiedDiff("A.java", "a\nb\n", "a\nb\n")
	require.NoError(t, err)
	assert.Empty(t, diff)

	diff, err = UnifiedDiff("A.java", "a\nb\nc\n", "a\nB\nc\n")
	require.NoError(t, err)
	assert.Contains(t, diff, "@@ -1,3 +1,3 @@")
	assert.Equal(t, "--- a/A.java\n+++ b/A.java\n@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n", diff)

	diff, err = UnifiedDiff("A.java", "a\nb", "a\nB")
	require.NoError(t, err)
	assert.Equal(t, "--- a/A.java\n+++ b/A.java\n@@ -1,2 +1,2 @@\n a\n-b\n+B\n", diff)
}
