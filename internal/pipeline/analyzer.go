package pipeline

import (
	"context"
	"time"

	"codepolish/internal/analysis"
	"codepolish/internal/extractor"
	"codepolish/internal/llm"
	"codepolish/internal/metrics"
	"codepolish/internal/refactor"
	"codepolish/internal/storage"
	"codepolish/internal/suggest"

	"go.uber.org/zap"
)

const parseFailedSuggestion = "Parsing failed."

// Analyzer runs detection, scoring, suggestion and rewriting for one file at a
// time. It is safe for concurrent use; the refinement store is the only state
// shared between calls.
type Analyzer struct {
	ext          *extractor.Extractor
	detector     *analysis.Detector
	refactorer   *refactor.Refactorer
	orchestrator *suggest.Orchestrator
	store        storage.RefinementStore
	logger       *zap.Logger
}

func NewAnalyzer(ext *extractor.Extractor, completer llm.Completer, store storage.RefinementStore, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		ext:          ext,
		detector:     analysis.NewDetector(logger),
		refactorer:   refactor.NewRefactorer(ext, logger),
		orchestrator: suggest.NewOrchestrator(completer, logger),
		store:        store,
		logger:       logger,
	}
}

// Analyze never fails. An unparseable file yields a complete result with zero
// scores and a single file-level finding.
func (a *Analyzer) Analyze(ctx context.Context, fileName, text string) *analysis.AnalysisResult {
	started := time.Now()
	log := a.logger.With(zap.String("file", fileName))

	result := &analysis.AnalysisResult{
		FileName:       fileName,
		OriginalSource: text,
	}

	f, err := a.ext.Parse(ctx, []byte(text))
	if err != nil {
		log.Info("source does not parse", zap.Error(err))
		result.Issues = []analysis.Finding{{Line: 0, Message: analysis.MsgUnparseable}}
		result.AISuggestions = []string{parseFailedSuggestion}
		metrics.ObserveAnalysis(metrics.OutcomeUnparseable, time.Since(started))
		return result
	}

	result.Issues = a.detector.Detect(f)
	result.OriginalScore = analysis.ApplyFloor(analysis.Score(result.Issues))

	key := storage.Fingerprint(fileName, text)
	start, refined := a.store.Get(key)
	metrics.ObserveCacheLookup(refined)
	if !refined {
		start = text
	}

	deterministic := a.refactorer.Refactor(ctx, start)
	result.AISuggestions = a.orchestrator.Suggest(ctx, result.Issues, refined)
	rewritten, fromReply := a.orchestrator.Rewrite(ctx, start, result.AISuggestions, deterministic, refined)

	a.store.Put(key, rewritten)
	metrics.SetCacheEntries(a.store.Len())

	result.RefactoredSource = &rewritten
	result.RefactoredScore = a.rescore(ctx, rewritten)

	metrics.ObserveScore(metrics.StageOriginal, result.OriginalScore)
	metrics.ObserveScore(metrics.StageRefactored, result.RefactoredScore)
	metrics.ObserveAnalysis(metrics.OutcomeParsed, time.Since(started))
	log.Info("analysis complete",
		zap.Int("issues", len(result.Issues)),
		zap.Int("original_score", result.OriginalScore),
		zap.Int("refactored_score", result.RefactoredScore),
		zap.Bool("refined", refined),
		zap.Bool("ai_rewrite", fromReply),
		zap.Duration("elapsed", time.Since(started)),
	)
	return result
}

// rescore scores a rewrite, or returns 0 when it no longer parses.
func (a *Analyzer) rescore(ctx context.Context, text string) int {
	f, err := a.ext.Parse(ctx, []byte(text))
	if err != nil {
		return 0
	}
	return analysis.ApplyFloor(analysis.Score(a.detector.Detect(f)))
}

// Refine submits the same file passes times in a row, so that each pass starts
// from the previous pass's rewrite.
func (a *Analyzer) Refine(ctx context.Context, fileName, text string, passes int) []*analysis.AnalysisResult {
	if passes < 1 {
		passes = 1
	}
	results := make([]*analysis.AnalysisResult, 0, passes)
	for i := 0; i < passes; i++ {
		if ctx.Err() != nil {
			break
		}
		results = append(results, a.Analyze(ctx, fileName, text))
	}
	return results
}
