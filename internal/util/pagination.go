package util

import "strconv"

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// Normalize clamps a 1-indexed page and a page size to usable values.
func Normalize(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
