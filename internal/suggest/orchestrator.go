package suggest

import (
	"context"
	"time"

	"codepolish/internal/analysis"
	"codepolish/internal/llm"
	"codepolish/internal/metrics"

	"go.uber.org/zap"
)

// Orchestrator runs the two suggestion service exchanges of an analysis.
type Orchestrator struct {
	completer llm.Completer
	logger    *zap.Logger
}

func NewOrchestrator(completer llm.Completer, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{completer: completer, logger: logger}
}

// Suggest asks for fixes to findings and parses the reply.
func (o *Orchestrator) Suggest(ctx context.Context, findings []analysis.Finding, refined bool) []string {
	started := time.Now()
	reply := llm.Ask(ctx, o.completer, SuggestionPrompt(findings, refined))
	suggestions := ParseSuggestions(reply)

	metrics.ObserveLLMCall(metrics.CallSuggest, len(suggestions) > 0, time.Since(started))
	o.logger.Debug("suggestions parsed",
		zap.Int("findings", len(findings)),
		zap.Int("suggestions", len(suggestions)),
		zap.Bool("refined", refined),
		zap.Duration("elapsed", time.Since(started)),
	)
	return suggestions
}

// Rewrite asks for start rewritten with suggestions applied. The second
// return reports whether the reply carried a rewrite; otherwise fallback is
// returned.
func (o *Orchestrator) Rewrite(ctx context.Context, start string, suggestions []string, fallback string, refined bool) (string, bool) {
	started := time.Now()
	reply := llm.Ask(ctx, o.completer, RewritePrompt(start, suggestions, refined))

	text, fromReply := ExtractRewrite(reply, fallback)

	metrics.ObserveLLMCall(metrics.CallRewrite, fromReply, time.Since(started))
	if !fromReply {
		o.logger.Info("rewrite reply had no code block, using deterministic refactor",
			zap.String("provider", o.completer.Provider()),
			zap.Bool("refined", refined),
		)
	}
	return text, fromReply
}
