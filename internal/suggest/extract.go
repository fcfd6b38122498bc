package suggest

import (
	"regexp"
	"strings"
)

const fence = "```"

// fenceTag is an optional language tag closing the opening fence's line.
var fenceTag = regexp.MustCompile(`^[A-Za-z0-9+#-]*[ \t]*(\r?\n|$)`)

// ExtractRewrite returns the trimmed text between the first opening fence and
// the last closing fence of reply, or fallback when there is none. The flag
// reports whether the text came from the reply.
func ExtractRewrite(reply, fallback string) (string, bool) {
	if code, ok := fencedCode(reply); ok {
		return code, true
	}
	return fallback, false
}

func fencedCode(reply string) (string, bool) {
	start := strings.Index(reply, fence)
	end := strings.LastIndex(reply, fence)
	if start == -1 || start >= end {
		return "", false
	}

	body := reply[start+len(fence) : end]
	if loc := fenceTag.FindStringIndex(body); loc != nil {
		body = body[loc[1]:]
	}
	code := strings.TrimSpace(body)
	return code, code != ""
}
