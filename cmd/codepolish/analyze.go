package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"codepolish/internal/analysis"
	"codepolish/internal/crawler"
	"codepolish/internal/git"
	"codepolish/internal/pipeline"
	"codepolish/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type analyzeFlags struct {
	json        bool
	diff        bool
	passes      int
	since       string
	concurrency int
}

var analyzeOpts analyzeFlags

var analyzeCmd = &cobra.Command{
	Use:   "analyze [paths...]",
	Short: "Analyze Java files and print a report",
	Long: `Analyzes every .java file found under the given paths (default ".").
With --since, only files changed relative to the given git ref are analyzed.
With --passes N, each file is resubmitted N times so later passes refine the
previous rewrite.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if len(args) == 0 {
			args = []string{"."}
		}
		opts := analyzeOpts
		if !cmd.Flags().Changed("passes") {
			opts.passes = cfg.Analyze.Passes
		}
		if !cmd.Flags().Changed("concurrency") {
			opts.concurrency = cfg.Analyze.Concurrency
		}

		files, err := selectFiles(ctx, args, opts.since)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			logger.Info("no java files to analyze")
		}

		analyzer, err := newAnalyzer(ctx, cfg, logger)
		if err != nil {
			return err
		}
		results, err := analyzeFiles(ctx, analyzer, files, opts)
		if err != nil {
			return err
		}
		return writeReport(cmd.OutOrStdout(), results, opts)
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeOpts.json, "json", false, "Print results as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeOpts.diff, "diff", false, "Include a unified diff of each rewrite in the Markdown report")
	analyzeCmd.Flags().IntVar(&analyzeOpts.passes, "passes", 1, "Number of refinement passes per file")
	analyzeCmd.Flags().StringVar(&analyzeOpts.since, "since", "", "Only analyze files changed since this git ref")
	analyzeCmd.Flags().IntVar(&analyzeOpts.concurrency, "concurrency", 4, "Files analyzed in parallel")
}

func selectFiles(ctx context.Context, roots []string, since string) ([]string, error) {
	if since == "" {
		return crawler.NewCrawler().Collect(roots...)
	}

	var files []string
	for _, root := range roots {
		changes, err := git.ChangedFiles(ctx, root, since, ".java")
		if err != nil {
			return nil, err
		}
		for _, c := range changes {
			logger.Debug("changed file", zap.String("path", c.Path), zap.Int("changed_lines", len(c.ChangedLines)))
			files = append(files, c.Path)
		}
	}
	return files, nil
}

// analyzeFiles runs files through the analyzer in parallel and returns the
// final pass of each, in input order.
func analyzeFiles(ctx context.Context, analyzer *pipeline.Analyzer, files []string, opts analyzeFlags) ([]*analysis.AnalysisResult, error) {
	results := make([]*analysis.AnalysisResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.concurrency, 1))
	for i, path := range files {
		g.Go(func() error {
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			passes := analyzer.Refine(ctx, path, string(content), opts.passes)
			if len(passes) == 0 {
				return ctx.Err()
			}
			for n, r := range passes {
				logger.Debug("pass complete",
					zap.String("file", path),
					zap.Int("pass", n+1),
					zap.Int("refactored_score", r.RefactoredScore),
				)
			}
			results[i] = passes[len(passes)-1]
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeReport(w io.Writer, results []*analysis.AnalysisResult, opts analyzeFlags) error {
	if opts.json {
		return report.WriteJSON(w, results)
	}
	return report.WriteMarkdown(w, results, report.MarkdownOptions{Diff: opts.diff})
}
