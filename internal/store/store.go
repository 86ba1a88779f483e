package store

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
)

var ErrClosed = errors.New("store: closed")

// DocumentStore is keyed document access: JSON values addressed by a
// slash-separated path. Writes are last-write-wins, there are no
// transactions and no partial updates.
type DocumentStore interface {
	// Get returns the raw document at path, or nil when absent.
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Set(ctx context.Context, path string, value any) error
	Delete(ctx context.Context, path string) error
	// List returns the documents whose paths extend prefix, keyed by the
	// remainder of the path after the prefix.
	List(ctx context.Context, prefix string) (map[string]json.RawMessage, error)
	DeletePrefix(ctx context.Context, prefix string) error
}

// DecodeList decodes a snapshot that may be either a JSON array or a
// keyed object into an ordered slice. Arrays keep their order with null
// holes dropped; objects are ordered by key, which for push-style keys
// is chronological.
func DecodeList[T any](raw json.RawMessage) ([]T, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	trimmed := firstNonSpace(raw)
	switch trimmed {
	case '[':
		var sparse []*T
		if err := json.Unmarshal(raw, &sparse); err != nil {
			return nil, err
		}
		out := make([]T, 0, len(sparse))
		for _, item := range sparse {
			if item != nil {
				out = append(out, *item)
			}
		}
		return out, nil
	case '{':
		var keyed map[string]T
		if err := json.Unmarshal(raw, &keyed); err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(keyed))
		for k := range keyed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]T, 0, len(keys))
		for _, k := range keys {
			out = append(out, keyed[k])
		}
		return out, nil
	case 'n': // null
		return nil, nil
	}
	return nil, errors.New("store: snapshot is neither array nor object")
}

// Decode unmarshals a single document, leaving dst untouched when the
// document is absent. The boolean reports presence.
func Decode[T any](raw json.RawMessage, dst *T) (bool, error) {
	if len(raw) == 0 {
		return false, nil
	}
	if firstNonSpace(raw) == 'n' {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func firstNonSpace(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
