package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// keyedEntry is one member of a backend collection object, which maps
// backend-assigned keys to records.
type keyedEntry[T any] struct {
	Key   string
	Value T
}

// decodeKeyed decodes a collection object while preserving the document
// order of its keys, which encoding/json map decoding would lose. The
// backend answers with JSON null when a collection is empty.
func decodeKeyed[T any](data []byte) ([]keyedEntry[T], error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection: %w", err)
	}
	if tok == nil {
		return nil, nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("unexpected collection token %v", tok)
	}

	var entries []keyedEntry[T]
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read collection key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected collection key %v", keyTok)
		}

		var value T
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("failed to decode entry %q: %w", key, err)
		}
		entries = append(entries, keyedEntry[T]{Key: key, Value: value})
	}

	return entries, nil
}
