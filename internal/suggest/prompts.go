package suggest

import (
	"fmt"
	"strings"

	"codepolish/internal/analysis"
)

// SuggestionPrompt lists every finding and asks for fixes. refined escalates
// the framing when the file was already rewritten once.
func SuggestionPrompt(findings []analysis.Finding, refined bool) string {
	var sb strings.Builder
	if refined {
		sb.WriteString("You are a senior Java refactoring expert. The code needs further improvements to reach a perfect score. ")
		sb.WriteString("The code was previously refactored but still has these issues:\n")
	} else {
		sb.WriteString("You are a senior Java reviewer. The file has the following issues:\n")
	}
	for _, f := range findings {
		fmt.Fprintf(&sb, "Line %d: %s\n", f.Line, f.Message)
	}
	sb.WriteString("\nProvide concise suggestions to fix each issue, and provide a brief overall summary. Reply in plain text.")
	return sb.String()
}

// RewritePrompt asks for the whole file back inside a single fenced block.
func RewritePrompt(start string, suggestions []string, refined bool) string {
	var sb strings.Builder
	if refined {
		sb.WriteString("You are a senior Java expert tasked with PERFECT code refactoring. ")
		sb.WriteString("This code has been previously refactored but still needs improvement. ")
		sb.WriteString("Your goal is to achieve 100% quality score by fixing ALL remaining issues.\n\n")
	} else {
		sb.WriteString("You are a senior Java developer tasked with refactoring code. ")
	}

	sb.WriteString("Here is the Java code to improve:\n\n```java\n")
	sb.WriteString(start)
	sb.WriteString("\n```\n\n")
	sb.WriteString("Apply these improvements to the code:\n")
	for _, s := range suggestions {
		fmt.Fprintf(&sb, "- %s\n", s)
	}

	if refined {
		sb.WriteString("\nBe extremely thorough. Fix EVERY issue including those not explicitly mentioned above. ")
		sb.WriteString("Focus on clean code principles, proper exception handling, removing any hardcoded values, ")
		sb.WriteString("and ensuring code meets highest quality standards.\n")
	}

	sb.WriteString("\nProvide ONLY the complete refactored code with no explanations. Begin and end with ```java and ```")
	return sb.String()
}
