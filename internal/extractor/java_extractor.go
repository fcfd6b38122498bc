package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// JavaExtractor implements LanguageExtractor for Java.
type JavaExtractor struct{}

func (j *JavaExtractor) GetLanguage() *sitter.Language {
	return java.GetLanguage()
}

func (j *JavaExtractor) GetQuery() string {
	return `
		(method_declaration) @method
		(constructor_declaration) @constructor
		(class_declaration) @class
		(interface_declaration) @interface
		(enum_declaration) @enum
	`
}

func (j *JavaExtractor) ExtractUnit(captureName string, node *sitter.Node, sourceCode []byte) *CodeUnit {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	content := node.Content(sourceCode)
	return &CodeUnit{
		Name:      nameNode.Content(sourceCode),
		UnitType:  captureName,
		StartLine: int(node.StartPoint().Row + 1),
		EndLine:   int(node.EndPoint().Row + 1),
		LineCount: CountLines(content),
		Content:   content,
		StartByte: node.StartByte(),
	}
}
