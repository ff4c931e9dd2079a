package http

import (
	"math"
	"net/http"
	"strconv"

	"github.com/mjza/mra-core-sub001/internal/query"
	dErrors "github.com/mjza/mra-core-sub001/pkg/domain-errors"
)

// paginationFrom reads limit/offset query parameters. Absent parameters get
// the defaults; values that do not parse become NaN so validation rejects
// them with the same message as any other invalid pagination.
func paginationFrom(r *http.Request) *query.Pagination {
	p := &query.Pagination{Limit: 100, Offset: 0}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		p.Limit = parseNumber(raw)
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		p.Offset = parseNumber(raw)
	}
	return p
}

func parseNumber(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// filterFrom decodes the optional filter query parameter. An absent or
// empty filter matches everything.
func filterFrom(r *http.Request) (query.Expression, error) {
	raw := r.URL.Query().Get("filter")
	if raw == "" {
		return nil, nil
	}
	expr, err := query.DecodeJSON([]byte(raw))
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "Filter must be a valid JSON object.")
	}
	return expr, nil
}

// coordinatesFrom reads longitude/latitude query parameters. Unparseable
// values come back as NaN, which the geo service rejects as out of range.
func coordinatesFrom(r *http.Request) (lon, lat float64) {
	return parseNumber(r.URL.Query().Get("longitude")), parseNumber(r.URL.Query().Get("latitude"))
}
