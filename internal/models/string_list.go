// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package models

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// StringList is an ordered list of strings stored as a JSON array in a TEXT
// column. It never encodes as null: a nil list is written as [].
type StringList []string

// NewStringList copies items, trimming whitespace and dropping blank entries.
func NewStringList(items []string) StringList {
	out := make(StringList, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("encode string list: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner. NULL and empty text scan to an empty list.
func (l *StringList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}

	if strings.TrimSpace(string(raw)) == "" {
		*l = StringList{}
		return nil
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("decode string list: %w", err)
	}
	if items == nil {
		items = []string{}
	}
	*l = items
	return nil
}

// MarshalJSON keeps empty lists as [] in API responses.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}
