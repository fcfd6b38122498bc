package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"codepolish/internal/analysis"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed analysis_result.schema.json
var resultSchemaJSON string

const resultSchemaURL = "analysis_result.schema.json"

var (
	resultSchemaOnce sync.Once
	resultSchema     *jsonschema.Schema
	resultSchemaErr  error
)

func compiledResultSchema() (*jsonschema.Schema, error) {
	resultSchemaOnce.Do(func() {
		resultSchema, resultSchemaErr = jsonschema.CompileString(resultSchemaURL, resultSchemaJSON)
	})
	return resultSchema, resultSchemaErr
}

// Validate checks a result against the published JSON shape.
func Validate(result *analysis.AnalysisResult) error {
	schema, err := compiledResultSchema()
	if err != nil {
		return fmt.Errorf("failed to compile result schema: %w", err)
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result for schema validation: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("failed to normalize result for schema validation: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("result schema validation failed for %s: %w", result.FileName, err)
	}
	return nil
}

// WriteJSON validates every result and writes them as an indented array.
func WriteJSON(w io.Writer, results []*analysis.AnalysisResult) error {
	for _, r := range results {
		if err := Validate(r); err != nil {
			return err
		}
	}
	if results == nil {
		results = []*analysis.AnalysisResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
