package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// collectionKeys are the object properties that may hold a collection, checked in
// order. `data` comes first; the named keys cover older endpoints.
var collectionKeys = []string{"data", "categories", "jobs", "applications", "items"}

// entityKeys are the object properties that may wrap a single entity.
var entityKeys = []string{"data", "job", "application", "user"}

// decodeCollection unwraps a collection sent as a bare array, as {data: [...]}, or
// as {success, count, data}.
func decodeCollection[T any](body []byte) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return []T{}, nil
	}

	if body[0] == '[' {
		var items []T
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("failed to decode collection: %w", err)
		}
		return items, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("unexpected collection payload: %w", err)
	}
	for _, key := range collectionKeys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != '[' {
			if bytes.Equal(raw, []byte("null")) {
				return []T{}, nil
			}
			continue
		}
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("failed to decode %s collection: %w", key, err)
		}
		return items, nil
	}
	return nil, fmt.Errorf("payload contains no collection")
}

// decodeEntity unwraps a single entity sent bare or wrapped in one of entityKeys.
// A wrapper is only recognized when the entity itself lacks an id.
func decodeEntity[T any](body []byte) (T, error) {
	var zero T
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return zero, fmt.Errorf("unexpected entity payload")
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return zero, fmt.Errorf("failed to decode entity: %w", err)
	}

	_, hasMongoID := obj["_id"]
	_, hasID := obj["id"]
	if !hasMongoID && !hasID {
		for _, key := range entityKeys {
			raw, ok := obj[key]
			if !ok {
				continue
			}
			raw = bytes.TrimSpace(raw)
			if len(raw) > 0 && raw[0] == '{' {
				body = raw
				break
			}
		}
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return zero, fmt.Errorf("failed to decode entity: %w", err)
	}
	return out, nil
}
