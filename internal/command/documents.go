package command

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// stdinName is the argument that selects standard input.
const stdinName = "-"

// document is one top-level value read from an input file. A file may hold
// several YAML documents or a top-level sequence of objects.
type document struct {
	Source string
	Index  int
	Data   map[string]any
}

// readDocuments reads every document from the given files in order. JSON
// input is read with the YAML decoder, which accepts it as a subset.
func readDocuments(stdin io.Reader, names ...string) ([]document, error) {
	if len(names) == 0 {
		names = []string{stdinName}
	}

	var docs []document
	for _, name := range names {
		found, err := readFile(stdin, name)
		if err != nil {
			return nil, err
		}
		docs = append(docs, found...)
	}
	return docs, nil
}

func readFile(stdin io.Reader, name string) ([]document, error) {
	if name == stdinName {
		if stdin == nil {
			return nil, fmt.Errorf("%w: standard input is not available here", ErrFailedToRead)
		}
		return decodeDocuments("stdin", stdin)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Join(ErrFailedToRead, err)
	}
	defer f.Close()
	return decodeDocuments(name, f)
}

func decodeDocuments(source string, r io.Reader) ([]document, error) {
	var docs []document
	add := func(raw any) error {
		data, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %s#%d: expected an object, got %T", ErrInvalidDocument, source, len(docs)+1, raw)
		}
		docs = append(docs, document{Source: source, Index: len(docs) + 1, Data: data})
		return nil
	}

	dec := yaml.NewDecoder(r)
	for {
		var raw any
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, source, err)
		}

		switch t := raw.(type) {
		case nil:
			continue
		case []any:
			for _, item := range t {
				if err := add(item); err != nil {
					return nil, err
				}
			}
		default:
			if err := add(t); err != nil {
				return nil, err
			}
		}
	}
	return docs, nil
}

// readPrevious reads the single document a change is validated against.
func readPrevious(name string) (document, error) {
	docs, err := readDocuments(nil, name)
	if err != nil {
		return document{}, err
	}
	if len(docs) != 1 {
		return document{}, fmt.Errorf("%w: %s holds %d", ErrPreviousDocument, name, len(docs))
	}
	return docs[0], nil
}

func (d document) String() string {
	return fmt.Sprintf("%s#%d", d.Source, d.Index)
}
