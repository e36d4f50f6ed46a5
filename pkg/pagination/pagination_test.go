package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	return Parse(e.NewContext(req, rec))
}

func TestParseDefaults(t *testing.T) {
	p := paramsFor(t, "")
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Empty(t, p.Search)
}

func TestParseClampsOutOfRange(t *testing.T) {
	p := paramsFor(t, "page=-3&limit=0")
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)

	p = paramsFor(t, "limit=5000")
	assert.Equal(t, MaxLimit, p.Limit)

	p = paramsFor(t, "page=abc&limit=xyz")
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestParseTrimsSearch(t *testing.T) {
	p := paramsFor(t, "search=+hotel+")
	assert.Equal(t, "hotel", p.Search)
}

func TestOffsetAndTotalPages(t *testing.T) {
	p := Params{Page: 3, Limit: 10}
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(10))
	assert.Equal(t, 2, p.TotalPages(11))
	assert.Equal(t, 5, p.TotalPages(50))
}
