package messages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes catalog files. Catalogs are keyed by language tag, each
// holding message formats keyed by constraint name:
//
//	de:
//	  required: "Es muss ein Wert gesetzt sein."
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]map[string]string, error)
	SupportsFileExtension(ext string) bool
}

// NewParserForFile returns a parser based on the file extension, or nil.
func NewParserForFile(filename string) Parser {
	idx := strings.LastIndex(filename, ".")
	if idx == -1 {
		return nil
	}
	switch strings.ToLower(filename[idx+1:]) {
	case "json":
		return JSONParser{}
	case "yaml", "yml":
		return YAMLParser{}
	}
	return nil
}

// YAMLParser reads catalogs from YAML, one top-level key per language.
type YAMLParser struct{}

func (YAMLParser) Parse(ctx context.Context, content []byte) (map[string]map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}
	var data map[string]map[string]string
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParse, err)
	}
	return checkCatalogs(data)
}

func (YAMLParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}

// JSONParser reads catalogs from JSON, one top-level key per language.
type JSONParser struct{}

func (JSONParser) Parse(ctx context.Context, content []byte) (map[string]map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}
	var data map[string]map[string]string
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParse, err)
	}
	return checkCatalogs(data)
}

func (JSONParser) SupportsFileExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "json")
}

func checkCatalogs(data map[string]map[string]string) (map[string]map[string]string, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no languages found", ErrFailedToParse)
	}
	for lang, formats := range data {
		if strings.TrimSpace(lang) == "" {
			return nil, fmt.Errorf("%w: empty language code", ErrFailedToParse)
		}
		if formats == nil {
			return nil, fmt.Errorf("%w: no formats for language %q", ErrFailedToParse, lang)
		}
	}
	return data, nil
}
