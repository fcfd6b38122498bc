package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"codepolish/internal/extractor"

	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"
)

// LongMethodThreshold is the number of lines a method may span before it is reported.
const LongMethodThreshold = 50

// Pass is one independent detection strategy over a parsed file.
type Pass interface {
	Name() string
	Detect(f *extractor.File) []Finding
}

// Detector runs the detection passes in a fixed order.
type Detector struct {
	passes []Pass
	logger *zap.Logger
}

// NewDetector creates a detector with the standard pass catalog.
func NewDetector(logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{
		passes: []Pass{
			consolePass{},
			textPass{name: "todo", re: todoRe, message: MsgTodo},
			textPass{name: "credential", re: credentialRe, message: MsgCredential},
			textPass{name: "broad-catch", re: broadCatchRe, message: MsgBroadCatch},
			textPass{name: "sql-concat", re: sqlConcatRe, message: MsgSQLConcat},
			longMethodPass{threshold: LongMethodThreshold},
		},
		logger: logger,
	}
}

// Passes returns the pass names in execution order.
func (d *Detector) Passes() []string {
	names := make([]string, 0, len(d.passes))
	for _, p := range d.passes {
		names = append(names, p.Name())
	}
	return names
}

// Detect runs every pass over f. The result is never nil.
func (d *Detector) Detect(f *extractor.File) []Finding {
	findings := []Finding{}
	for _, p := range d.passes {
		findings = append(findings, d.runPass(p, f)...)
	}
	return findings
}

func (d *Detector) runPass(p Pass, f *extractor.File) (out []Finding) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Warn("detection pass failed", zap.String("pass", p.Name()), zap.Any("panic", r))
			out = nil
		}
	}()
	return p.Detect(f)
}

// consolePass reports System.out.print/println calls found in the tree.
type consolePass struct{}

func (consolePass) Name() string { return "console-output" }

func (consolePass) Detect(f *extractor.File) []Finding {
	var findings []Finding
	f.Walk(func(n *sitter.Node) bool {
		if IsConsoleCall(f, n, "print", "println") {
			// reported one line below the call
			findings = append(findings, Finding{Line: f.Line(n) + 1, Message: MsgConsoleOutput})
		}
		return true
	})
	return findings
}

// IsConsoleCall reports whether n invokes one of methods on System.out.
func IsConsoleCall(f *extractor.File, n *sitter.Node, methods ...string) bool {
	if n.Type() != "method_invocation" {
		return false
	}
	object := n.ChildByFieldName("object")
	name := n.ChildByFieldName("name")
	if object == nil || name == nil {
		return false
	}
	scope := f.Content(object)
	if scope != "System.out" && !strings.HasSuffix(scope, "System.out") {
		return false
	}
	method := f.Content(name)
	for _, m := range methods {
		if method == m {
			return true
		}
	}
	return false
}

var (
	todoRe       = regexp.MustCompile(`TODO|FIXME`)
	credentialRe = regexp.MustCompile(`(?i)(password\s*=\s*".+?"|secret\s*=\s*".+?"|API_KEY\s*=\s*".+?")`)
	broadCatchRe = regexp.MustCompile(`(?i)catch\s*\(\s*Exception\s+\w+\s*\)`)
	sqlConcatRe  = regexp.MustCompile(`(?i)execute(Query|Update)\s*\(.*\+.*\)`)
)

// textPass scans the raw text with a regular expression, independent of the tree.
type textPass struct {
	name    string
	re      *regexp.Regexp
	message string
}

func (p textPass) Name() string { return p.name }

func (p textPass) Detect(f *extractor.File) []Finding {
	text := f.Text()
	var findings []Finding
	for _, loc := range p.re.FindAllStringIndex(text, -1) {
		findings = append(findings, Finding{Line: extractor.LineAt(text, loc[0]), Message: p.message})
	}
	return findings
}

// longMethodPass reports methods spanning more than threshold lines.
type longMethodPass struct {
	threshold int
}

func (longMethodPass) Name() string { return "long-method" }

func (p longMethodPass) Detect(f *extractor.File) []Finding {
	var findings []Finding
	for _, u := range f.Units() {
		if u.UnitType != "method" || u.LineCount <= p.threshold {
			continue
		}
		findings = append(findings, Finding{
			Line:    u.StartLine + 1,
			Message: fmt.Sprintf("Long method '%s' (%d lines) — consider refactoring.", u.Name, u.LineCount),
		})
	}
	return findings
}
