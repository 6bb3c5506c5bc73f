package schema

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes schema definitions from one file format.
type Parser interface {
	Parse(ctx context.Context, content []byte) (*Definitions, error)

	// SupportsFileExtension reports whether the parser handles the extension,
	// with or without the leading dot.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile returns a parser based on the file extension, or nil.
func NewParserForFile(filename string) Parser {
	ext := getFileExtension(filename)

	switch strings.ToLower(ext) {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}

func getFileExtension(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx != -1 {
		return filename[idx+1:]
	}
	return ""
}

// YAMLParser implements Parser for YAML files.
type YAMLParser struct{}

func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

func (p *YAMLParser) Parse(ctx context.Context, content []byte) (*Definitions, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}
	var defs Definitions
	if err := yaml.Unmarshal(content, &defs); err != nil {
		return nil, errors.Join(ErrFailedToParse, err)
	}
	return &defs, nil
}

func (p *YAMLParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}

// JSONParser implements Parser for JSON files.
type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Parse(ctx context.Context, content []byte) (*Definitions, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}
	var defs Definitions
	if err := json.Unmarshal(content, &defs); err != nil {
		return nil, errors.Join(ErrFailedToParse, err)
	}
	return &defs, nil
}

func (p *JSONParser) SupportsFileExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "json")
}

// LoadYAML parses YAML definitions and builds a registry.
func LoadYAML(ctx context.Context, content []byte) (*Registry, error) {
	defs, err := NewYAMLParser().Parse(ctx, content)
	if err != nil {
		return nil, err
	}
	return defs.Registry()
}

// LoadFile reads a .yaml, .yml or .json definitions file and builds a registry.
func LoadFile(ctx context.Context, path string) (*Registry, error) {
	parser := NewParserForFile(path)
	if parser == nil {
		return nil, errors.Join(ErrFailedToParse, errors.New("unsupported file extension: "+path))
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	defs, err := parser.Parse(ctx, content)
	if err != nil {
		return nil, err
	}
	return defs.Registry()
}
