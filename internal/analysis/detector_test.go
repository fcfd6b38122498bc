package analysis

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"codepolish/internal/extractor"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *extractor.File {
	t.Helper()
	ext, err := extractor.NewExtractor("java")
	require.NoError(t, err)
	f, err := ext.Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	return f
}

func TestDetector_SampleFixture(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "Sample.java"))
	require.NoError(t, err)

	findings := NewDetector(nil).Detect(parse(t, string(src)))

	want := []Finding{
		{Line: 7, Message: MsgConsoleOutput},
		{Line: 7, Message: MsgTodo},
		{Line: 8, Message: MsgCredential},
		{Line: 11, Message: MsgBroadCatch},
		{Line: 17, Message: "Long method 'big' (60 lines) — consider refactoring."},
	}
	if diff := cmp.Diff(want, findings); diff != "" {
		t.Fatalf("findings mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 32, Score(findings))
	assert.Equal(t, 40, ApplyFloor(Score(findings)))
}

func TestDetector_PassOrder(t *testing.T) {
	assert.Equal(t, []string{
		"console-output", "todo", "credential", "broad-catch", "sql-concat", "long-method",
	}, NewDetector(nil).Passes())
}

func TestDetector_ConsoleOutput(t *testing.T) {
	src := `class A {
    void m() {
        System.out.print("a");
        java.lang.System.out.println("b");
        System.err.println("c");
        out.println("d");
        System.out.printf("%s", "e");
    }
}`
	findings := NewDetector(nil).Detect(parse(t, src))
	require.Len(t, findings, 2)
	assert.Equal(t, 4, findings[0].Line)
	assert.Equal(t, 5, findings[1].Line)
	for _, f := range findings {
		assert.Equal(t, MsgConsoleOutput, f.Message)
	}
}

func TestDetector_TextPatterns(t *testing.T) {
	t.Run("Markers are case sensitive", func(t *testing.T) {
		src := "class A {\n    // todo lower\n    // FIXME upper\n    /* TODO block */\n}"
		findings := NewDetector(nil).Detect(parse(t, src))
		require.Len(t, findings, 2)
		assert.Equal(t, Finding{Line: 3, Message: MsgTodo}, findings[0])
		assert.Equal(t, Finding{Line: 4, Message: MsgTodo}, findings[1])
	})

	t.Run("Credentials", func(t *testing.T) {
		src := "class A {\n    String SECRET = \"s3\";\n    String api_key=\"k\";\n    String password = getenv();\n}"
		findings := NewDetector(nil).Detect(parse(t, src))
		require.Len(t, findings, 2)
		assert.Equal(t, 2, findings[0].Line)
		assert.Equal(t, 3, findings[1].Line)
		assert.Equal(t, MsgCredential, findings[0].Message)
	})

	t.Run("Broad catch only for Exception", func(t *testing.T) {
		src := `class A {
    void m() {
        try { run(); } catch (IOException e) { }
        try { run(); } catch ( exception  err ) { }
        try { run(); } catch (RuntimeException e) { }
    }
}`
		findings := NewDetector(nil).Detect(parse(t, src))
		require.Len(t, findings, 1)
		assert.Equal(t, Finding{Line: 4, Message: MsgBroadCatch}, findings[0])
	})

	t.Run("SQL concatenation", func(t *testing.T) {
		src := `class A {
    void m(Statement st, String id) throws Exception {
        st.executeQuery("SELECT * FROM users WHERE id = " + id);
        st.executeUpdate("DELETE FROM users");
        st.EXECUTEUPDATE("DELETE FROM t WHERE id=" + id);
    }
}`
		findings := NewDetector(nil).Detect(parse(t, src))
		require.Len(t, findings, 2)
		assert.Equal(t, Finding{Line: 3, Message: MsgSQLConcat}, findings[0])
		assert.Equal(t, 5, findings[1].Line)
	})
}

func TestDetector_LongMethodBoundary(t *testing.T) {
	build := func(lines int) string {
		src := "class A {\n    void m() {\n"
		for i := 0; i < lines-2; i++ {
			src += "        x();\n"
		}
		return src + "    }\n}\n"
	}

	assert.Empty(t, NewDetector(nil).Detect(parse(t, build(50))))

	findings := NewDetector(nil).Detect(parse(t, build(51)))
	require.Len(t, findings, 1)
	assert.Equal(t, 3, findings[0].Line)
	assert.Equal(t, "Long method 'm' (51 lines) — consider refactoring.", findings[0].Message)
}

func TestDetector_CleanFile(t *testing.T) {
	findings := NewDetector(nil).Detect(parse(t, "class A { int add(int a, int b) { return a + b; } }"))
	assert.NotNil(t, findings)
	assert.Empty(t, findings)
	assert.Equal(t, 100, Score(findings))
}

func TestDetector_MessagesAreStable(t *testing.T) {
	src := `class A {
    String password = "p";
    void m(Statement st, String id) {
        System.out.println("x"); // TODO
        try { st.executeQuery("SELECT " + id); } catch (Exception e) { }
    }
}`
	var got []string
	for _, f := range NewDetector(nil).Detect(parse(t, src)) {
		got = append(got, f.Message)
	}
	assert.ElementsMatch(t, []string{
		"Use of System.out.println — prefer a logging framework (SLF4J/Logback).",
		"Found TODO/FIXME comment — address before production.",
		"Possible hard-coded credential pattern — move secrets to config/secrets manager.",
		"Broad catch of Exception — catch specific exceptions and avoid swallowing errors.",
		"Possible SQL string concatenation — use PreparedStatement to prevent SQL injection.",
	}, got)
}
