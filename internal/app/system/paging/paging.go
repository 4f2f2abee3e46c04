// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"
)

// PageSize is the default number of rows returned by collection endpoints.
const PageSize = 30

// MaxPageSize caps client-requested limits.
const MaxPageSize = 100

// ParseSkip extracts the "skip" query parameter. Returns 0 if not present
// or invalid.
func ParseSkip(r *http.Request) int64 {
	n, err := strconv.ParseInt(r.URL.Query().Get("skip"), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseLimit extracts the "limit" query parameter, defaulting to PageSize
// and clamping to MaxPageSize.
func ParseLimit(r *http.Request) int64 {
	n, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if err != nil || n <= 0 {
		return PageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}
