// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package ingest

import (
	"strconv"
	"strings"
)

// Pagination locates one page within a result list.
type Pagination struct {
	Page       int
	TotalPages int
	Offset     int
	Count      int
}

// Paginate clamps page into [1, TotalPages]. An empty list is page 1 of 1.
func Paginate(total, page, size int) Pagination {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}

	pages := (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	offset := (page - 1) * size
	count := min(size, total-offset)
	if count < 0 {
		count = 0
	}
	return Pagination{Page: page, TotalPages: pages, Offset: offset, Count: count}
}

// ParsePage reads a page query parameter. Anything that is not a positive
// integer is page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
