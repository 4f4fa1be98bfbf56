package fakeapi

import (
	"errors"
	"strconv"
	"strings"
)

var errPagination = errors.New("invalid pagination params")

// parsePagination reads page and limit. Pagination applies only when both are
// present; ok is false otherwise.
func parsePagination(pageStr, limitStr string) (page, limit int, ok bool, err error) {
	pageStr, limitStr = strings.TrimSpace(pageStr), strings.TrimSpace(limitStr)
	if pageStr == "" || limitStr == "" {
		return 0, 0, false, nil
	}

	page, err = strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0, 0, false, errPagination
	}
	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		return 0, 0, false, errPagination
	}
	return page, limit, true, nil
}

func paginate[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return items[:0]
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
