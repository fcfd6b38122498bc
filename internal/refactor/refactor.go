package refactor

import (
	"context"
	"fmt"

	"codepolish/internal/extractor"

	"go.uber.org/zap"
)

// Rule is a deterministic rewrite. It never mutates its input and returns the
// input itself when nothing matches.
type Rule struct {
	Name  string
	Apply func(ctx context.Context, f *extractor.File) (*extractor.File, error)
}

// DefaultRules returns the rewrite rules in the order they are applied.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "console-to-logger", Apply: replaceConsoleOutput},
		{Name: "drop-todo-comments", Apply: removeTodoComments},
		{Name: "externalize-credentials", Apply: externalizeCredentials},
		{Name: "narrow-broad-catch", Apply: narrowBroadCatch},
		{Name: "ensure-logger-imports", Apply: ensureLoggerImports},
		{Name: "ensure-logger-field", Apply: ensureLoggerField},
	}
}

// Refactorer applies the rewrite rules to whole files.
type Refactorer struct {
	ext    *extractor.Extractor
	rules  []Rule
	logger *zap.Logger
}

// NewRefactorer creates a refactorer with the default rules.
func NewRefactorer(ext *extractor.Extractor, logger *zap.Logger) *Refactorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refactorer{ext: ext, rules: DefaultRules(), logger: logger}
}

// Refactor returns text with every rule applied. On a parse failure, a rule
// error or a rule that produces unparseable output, text is returned unchanged.
func (r *Refactorer) Refactor(ctx context.Context, text string) (out string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("refactor aborted", zap.Any("panic", rec))
			out = text
		}
	}()

	f, err := r.ext.Parse(ctx, []byte(text))
	if err != nil {
		r.logger.Debug("refactor skipped: source does not parse", zap.Error(err))
		return text
	}

	result, err := r.Apply(ctx, f)
	if err != nil {
		r.logger.Warn("refactor rule failed, keeping original source", zap.Error(err))
		return text
	}
	return result.Text()
}

// Apply runs the rules over f in order.
func (r *Refactorer) Apply(ctx context.Context, f *extractor.File) (*extractor.File, error) {
	for _, rule := range r.rules {
		next, err := rule.Apply(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.Name, err)
		}
		f = next
	}
	return f, nil
}
