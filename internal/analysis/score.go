package analysis

import "strings"

const (
	// MaxScore is awarded to a file with no findings.
	MaxScore = 100
	// FloorScore is the minimum reported for any file that parses.
	FloorScore = 40
)

// Category groups findings for penalty weighting.
type Category string

const (
	CategoryLongMethod Category = "long_method"
	CategoryConsole    Category = "console_output"
	CategoryTodo       Category = "todo"
	CategoryCredential Category = "credential"
	CategoryBroadCatch Category = "broad_catch"
	CategorySQL        Category = "sql_concat"
	CategoryOther      Category = "other"
)

var penalties = map[Category]int{
	CategoryLongMethod: 15,
	CategoryConsole:    5,
	CategoryTodo:       8,
	CategoryCredential: 30,
	CategoryBroadCatch: 10,
	CategorySQL:        25,
	CategoryOther:      5,
}

// Classify maps a finding message to its category. The first matching phrase wins.
func Classify(message string) Category {
	switch {
	case strings.Contains(message, "Long method"):
		return CategoryLongMethod
	case strings.Contains(message, "System.out.println"):
		return CategoryConsole
	case strings.Contains(message, "TODO") || strings.Contains(message, "FIXME"):
		return CategoryTodo
	case strings.Contains(message, "hard-coded"):
		return CategoryCredential
	case strings.Contains(message, "Broad catch"):
		return CategoryBroadCatch
	case strings.Contains(message, "SQL"):
		return CategorySQL
	default:
		return CategoryOther
	}
}

// Penalty sums the weights of findings, capped at MaxScore.
func Penalty(findings []Finding) int {
	total := 0
	for _, f := range findings {
		total += penalties[Classify(f.Message)]
	}
	if total > MaxScore {
		return MaxScore
	}
	return total
}

// Score maps findings to a quality score in [0, 100].
func Score(findings []Finding) int {
	if len(findings) == 0 {
		return MaxScore
	}
	score := MaxScore - Penalty(findings)
	if score < 0 {
		return 0
	}
	return score
}

// ApplyFloor raises score to FloorScore. Only applied to files that parse.
func ApplyFloor(score int) int {
	if score < FloorScore {
		return FloorScore
	}
	return score
}
