package suggest

import (
	"context"
	"strings"
	"sync"
	"testing"

	"codepolish/internal/analysis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestionPrompt(t *testing.T) {
	findings := []analysis.Finding{
		{Line: 7, Message: analysis.MsgConsoleOutput},
		{Line: 11, Message: analysis.MsgBroadCatch},
	}

	first := SuggestionPrompt(findings, false)
	assert.True(t, strings.HasPrefix(first, "You are a senior Java reviewer."))
	assert.Contains(t, first, "Line 7: "+analysis.MsgConsoleOutput+"\n")
	assert.Contains(t, first, "Line 11: "+analysis.MsgBroadCatch+"\n")
	assert.NotContains(t, first, "perfect score")

	refined := SuggestionPrompt(findings, true)
	assert.Contains(t, refined, "further improvements to reach a perfect score")
	assert.Contains(t, refined, "Line 7: ")
}

func TestRewritePrompt(t *testing.T) {
	p := RewritePrompt("class A {}", []string{"Use a logger", "Drop TODOs"}, false)
	assert.Contains(t, p, "```java\nclass A {}\n```")
	assert.Contains(t, p, "- Use a logger\n- Drop TODOs\n")
	assert.NotContains(t, p, "extremely thorough")
	assert.True(t, strings.HasSuffix(p, "Begin and end with ```java and ```"))

	refined := RewritePrompt("class A {}", nil, true)
	assert.Contains(t, refined, "PERFECT code refactoring")
	assert.Contains(t, refined, "Be extremely thorough.")
}

func TestParseSuggestions(t *testing.T) {
	t.Run("Numbered bold leads", func(t *testing.T) {
		reply := strings.Join([]string{
			"### Suggestions for Fixing Issues",
			"",
			"1. **Logging**: Replace `System.out.println` with **SLF4J** logger calls.",
			"2. **TODO**: Remove it.",
			"3. **Credentials: env**: Load the password from the environment instead.",
			"```java",
			"logger.info(\"x\");",
			"```",
			"**Overall Summary:**",
			"The code contains several maintainability problems worth fixing.",
			"Addressing these issues: short",
		}, "\n")

		got := ParseSuggestions(reply)
		assert.Equal(t, []string{
			"Replace `System.out.println` with SLF4J logger calls.",
			"env: Load the password from the environment instead.",
			"The code contains several maintainability problems worth fixing.",
		}, got)
	})

	t.Run("Should sentences", func(t *testing.T) {
		reply := "Exceptions should be caught by their specific types whenever possible.\n" +
			"    Indented lines should not be picked up even when they are long enough.\n" +
			"short should line\n"
		assert.Equal(t, []string{
			"Exceptions should be caught by their specific types whenever possible.",
		}, ParseSuggestions(reply))
	})

	t.Run("Console fallback", func(t *testing.T) {
		got := ParseSuggestions("Error: HTTP 500 - System.out.println")
		assert.Equal(t, consoleFallback, got)
	})

	t.Run("Nothing usable", func(t *testing.T) {
		got := ParseSuggestions("OpenAI API key not configured")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestParseSuggestions_RecoversFromPanic(t *testing.T) {
	orig := skip
	t.Cleanup(func() { skip = orig })
	skip = func(string) bool { panic("unreadable line") }

	got := ParseSuggestions("1. **Logging**: Replace the console output with a logger.")
	assert.Equal(t, panicFallback, got)

	got[0] = "changed"
	assert.NotEqual(t, "changed", panicFallback[0])
}

func TestExtractRewrite(t *testing.T) {
	cases := []struct {
		name      string
		reply     string
		want      string
		fromReply bool
	}{
		{"Java fence", "```java\nX\n```", "X", true},
		{"Prose around", "Here you go:\n```java\nclass A {}\n```\nDone.", "class A {}", true},
		{"Bare fence", "```\nclass A {}\n```", "class A {}", true},
		{"Last closer wins", "```java\nA\n```\ntext\n```\nB\n```", "A\n```\ntext\n```\nB", true},
		{"No fences", "I cannot help with that.", "fallback", false},
		{"Single fence", "```java\nclass A {}", "fallback", false},
		{"Empty body", "```java\n   \n```", "fallback", false},
		{"Inline code", "```class A {}```", "class A {}", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, fromReply := ExtractRewrite(tc.reply, "fallback")
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.fromReply, fromReply)
		})
	}
}

type scriptedCompleter struct {
	mu      sync.Mutex
	replies []string
	prompts []string
}

func (s *scriptedCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if len(s.replies) == 0 {
		return "", nil
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

func (s *scriptedCompleter) Provider() string { return "Scripted" }

func TestOrchestrator(t *testing.T) {
	c := &scriptedCompleter{replies: []string{
		"1. **Logging**: Replace console output with an SLF4J logger.",
		"```java\nclass A { }\n```",
		"no code here",
	}}
	o := NewOrchestrator(c, nil)
	ctx := context.Background()

	suggestions := o.Suggest(ctx, []analysis.Finding{{Line: 3, Message: analysis.MsgConsoleOutput}}, false)
	assert.Equal(t, []string{"Replace console output with an SLF4J logger."}, suggestions)

	text, fromReply := o.Rewrite(ctx, "class A {}", suggestions, "deterministic", false)
	assert.True(t, fromReply)
	assert.Equal(t, "class A { }", text)

	text, fromReply = o.Rewrite(ctx, "class A {}", suggestions, "deterministic", true)
	assert.False(t, fromReply)
	assert.Equal(t, "deterministic", text)

	require.Len(t, c.prompts, 3)
	assert.Contains(t, c.prompts[1], "- Replace console output with an SLF4J logger.")
	assert.Contains(t, c.prompts[2], "Be extremely thorough.")
}
