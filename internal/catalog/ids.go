// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package catalog

import "strings"

// Identifier prefixes for catalog recipes.
const (
	IDPrefix       = "themealdb_"
	LegacyIDPrefix = "tmdb_"
)

// ExternalID namespaces a catalog-native id.
func ExternalID(nativeID string) string {
	return IDPrefix + nativeID
}

// NativeID strips a known prefix. It reports false when externalID is not a
// catalog identifier or has nothing after the prefix.
func NativeID(externalID string) (string, bool) {
	for _, prefix := range []string{IDPrefix, LegacyIDPrefix} {
		if native, ok := strings.CutPrefix(externalID, prefix); ok {
			return native, native != ""
		}
	}
	return "", false
}
