package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiff = `diff --git a/src/App.java b/src/App.java
index 1111111..2222222 100644
--- a/src/App.java
+++ b/src/App.java
@@ -3 +3,2 @@ class App {
-        System.out.println("a");
+        logger.info("a");
+        logger.info("b");
@@ -10,2 +11,0 @@ class App {
-    // TODO
-    // FIXME
diff --git a/src/Old.java b/src/Old.java
deleted file mode 100644
index 3333333..0000000
--- a/src/Old.java
+++ /dev/null
@@ -1 +0,0 @@
-class Old {}
diff --git a/README.md b/README.md
index 4444444..5555555 100644
--- a/README.md
+++ b/README.md
@@ -1 +1 @@
-old
+new
`

func TestParseDiff(t *testing.T) {
	changes, err := parseDiff([]byte(sampleDiff))
	require.NoError(t, err)
	require.Len(t, changes, 3)

	assert.Equal(t, ChangedFile{Path: "src/App.java", ChangedLines: []int{3, 4}}, changes[0])
	assert.Equal(t, "src/Old.java", changes[1].Path)
	assert.True(t, changes[1].Deleted)
	assert.Empty(t, changes[1].ChangedLines)
	assert.Equal(t, []int{1}, changes[2].ChangedLines)
}

func TestHasExt(t *testing.T) {
	assert.True(t, hasExt("a/B.java", nil))
	assert.True(t, hasExt("a/B.JAVA", []string{".java"}))
	assert.False(t, hasExt("README.md", []string{".java"}))
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-c", "user.name=test", "-c", "user.email=test@example.com"}, args...)...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
}

func TestChangedFiles(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	runGit(t, dir, "init", "-q")

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("A.java", "class A {\n}\n")
	write("B.java", "class B {\n}\n")
	write("notes.txt", "v1\n")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-q", "-m", "init")

	write("A.java", "class A {\n    int x;\n}\n")
	write("notes.txt", "v2\n")
	require.NoError(t, os.Remove(filepath.Join(dir, "B.java")))

	changes, err := ChangedFiles(context.Background(), dir, "HEAD", ".java")
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, filepath.Join(dir, "A.java"), changes[0].Path)
	assert.Equal(t, []int{2}, changes[0].ChangedLines)

	_, err = ChangedFiles(context.Background(), dir, "no-such-ref", ".java")
	assert.Error(t, err)
}
