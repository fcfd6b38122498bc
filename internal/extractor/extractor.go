package extractor

import (
	"context"
	"errors"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrSyntax is returned when the source contains syntax errors.
var ErrSyntax = errors.New("source has syntax errors")

// Extractor parses source text and extracts code units using a language-specific extractor.
// It is safe for concurrent use: every parse gets its own tree-sitter parser.
type Extractor struct {
	langExtractor LanguageExtractor
	langName      string
	query         *sitter.Query
}

// NewExtractor creates a new extractor for a given language.
func NewExtractor(lang string) (*Extractor, error) {
	var langExt LanguageExtractor
	switch lang {
	case "java":
		langExt = &JavaExtractor{}
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}

	query, err := sitter.NewQuery([]byte(langExt.GetQuery()), langExt.GetLanguage())
	if err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}
	return &Extractor{langExtractor: langExt, langName: lang, query: query}, nil
}

// Language returns the configured language name.
func (e *Extractor) Language() string {
	return e.langName
}

// Parse builds a syntax tree for source. The returned File is always usable for
// inspection; err wraps ErrSyntax when the tree contains error or missing nodes.
func (e *Extractor) Parse(ctx context.Context, source []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(e.langExtractor.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	if tree == nil {
		return nil, fmt.Errorf("failed to parse source: no tree produced")
	}

	f := &File{source: source, tree: tree, ext: e}
	if f.Root().HasError() {
		return f, ErrSyntax
	}
	return f, nil
}

// Units runs the language query over the file and returns the captured code units
// ordered by position.
func (e *Extractor) Units(f *File) []*CodeUnit {
	qc := sitter.NewQueryCursor()
	qc.Exec(e.query, f.Root())

	var units []*CodeUnit
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			captureName := e.query.CaptureNameForId(c.Index)
			unit := e.langExtractor.ExtractUnit(captureName, c.Node, f.source)
			if unit != nil {
				units = append(units, unit)
			}
		}
	}

	sort.SliceStable(units, func(i, j int) bool {
		return units[i].StartByte < units[j].StartByte
	})
	return units
}
