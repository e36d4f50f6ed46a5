// Package pagination parses the page/limit/search query convention used by
// every list endpoint.
package pagination

import (
	"math"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPage  = 1
	DefaultLimit = 25
	MaxLimit     = 200
)

// RecordsPerPageOptions lists the page sizes offered to clients.
var RecordsPerPageOptions = []int{10, 25, 50, 100}

// Params holds the parsed listing parameters.
type Params struct {
	Page   int
	Limit  int
	Search string
}

// Parse reads page, limit and search from the request query, clamping out
// of range values to defaults.
func Parse(c echo.Context) Params {
	page := atoiDefault(c.QueryParam("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	limit := atoiDefault(c.QueryParam("limit"), DefaultLimit)
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Search: strings.TrimSpace(c.QueryParam("search")),
	}
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages computes the page count for a total row count.
func (p Params) TotalPages(total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(p.Limit)))
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
