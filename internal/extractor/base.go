package extractor

import sitter "github.com/smacker/go-tree-sitter"

// CodeUnit is a declaration found in a parsed file: a routine or a type.
type CodeUnit struct {
	Name      string `json:"name"`
	UnitType  string `json:"unit_type"` // "method", "constructor", "class", "interface", "enum"
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	LineCount int    `json:"line_count"`
	Content   string `json:"content"`
	StartByte uint32 `json:"-"`
}

// LanguageExtractor defines the grammar and capture handling for one language.
type LanguageExtractor interface {
	GetLanguage() *sitter.Language
	GetQuery() string
	ExtractUnit(captureName string, node *sitter.Node, sourceCode []byte) *CodeUnit
}
