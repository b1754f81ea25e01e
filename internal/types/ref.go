// Package types provides type definitions for the job-board entities exchanged with the REST API.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// EntityRef is a reference to another entity. The API sends references either as a
// bare id string or as a populated object carrying `_id` (or `id`).
type EntityRef string

// UnmarshalJSON accepts a string, null, or an object with an `_id`/`id` field.
func (r *EntityRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = EntityRef(s)
		return nil
	}

	var obj struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("entity reference must be a string or object: %w", err)
	}
	if obj.MongoID != "" {
		*r = EntityRef(obj.MongoID)
	} else {
		*r = EntityRef(obj.ID)
	}
	return nil
}

// String returns the referenced id.
func (r EntityRef) String() string {
	return string(r)
}

// Requirements is an ordered list of requirement strings. Older job records store
// requirements as a single free-text string, which decodes to a one-element list.
type Requirements []string

// UnmarshalJSON accepts either a JSON array of strings or a single string.
func (r *Requirements) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = nil
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*r = nil
			return nil
		}
		*r = Requirements{s}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("requirements must be a string or list of strings: %w", err)
	}
	*r = list
	return nil
}
