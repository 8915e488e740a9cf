package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var ErrPageNotFound = errors.New("page not found")

type Page[T any] struct {
	Items   []T
	Total   int64
	Page    int
	PerPage int
}

// Paginate loads one page of query. Pages start at 1. A page other than the
// first with no items is reported as ErrPageNotFound, so an empty table still
// has a valid, empty first page.
func Paginate[T any](query *gorm.DB, page, perPage int) (Page[T], error) {
	if page < 1 || perPage < 1 {
		return Page[T]{}, ErrPageNotFound
	}

	q := query.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Page[T]{}, fmt.Errorf("count rows: %w", err)
	}

	items := make([]T, 0, perPage)
	if err := q.Offset((page - 1) * perPage).Limit(perPage).Find(&items).Error; err != nil {
		return Page[T]{}, fmt.Errorf("find page %d: %w", page, err)
	}

	if len(items) == 0 && page != 1 {
		return Page[T]{}, ErrPageNotFound
	}

	return Page[T]{Items: items, Total: total, Page: page, PerPage: perPage}, nil
}
