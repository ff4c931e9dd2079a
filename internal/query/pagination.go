package query

import (
	"math"

	dErrors "github.com/mjza/mra-core-sub001/pkg/domain-errors"
)

// Pagination carries limit/offset as they arrive from dynamic input.
// Values are float64 because JSON numbers decode that way; validation
// rejects anything that is not a usable integer.
type Pagination struct {
	Limit  float64 `json:"limit"`
	Offset float64 `json:"offset"`
}

// InvalidPaginationMessage is the single message every pagination failure
// reports, regardless of which field is invalid.
const InvalidPaginationMessage = "Limit and offset must be valid numbers."

// ValidatePagination accepts p iff it is present, both fields are finite
// integers, limit is positive, and offset is non-negative. Every violation
// fails identically; there is no partial validation.
func ValidatePagination(p *Pagination) error {
	if p == nil ||
		!finiteInteger(p.Limit) || !finiteInteger(p.Offset) ||
		p.Limit <= 0 || p.Offset < 0 {
		return dErrors.NewKind(dErrors.CodeValidation, dErrors.KindInvalidPagination,
			InvalidPaginationMessage)
	}
	return nil
}

// LimitInt returns the validated limit as an int.
func (p *Pagination) LimitInt() int { return int(p.Limit) }

// OffsetInt returns the validated offset as an int.
func (p *Pagination) OffsetInt() int { return int(p.Offset) }

func finiteInteger(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)
}
