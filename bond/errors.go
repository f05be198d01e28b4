package bond

import "errors"

// Construction-time validation errors. These indicate caller error and are
// returned immediately; numerical non-convergence is signaled with NaN
// instead (see DINetSpread).
var (
	// ErrInvalidDateOrder is returned when maturity is not strictly after
	// settlement.
	ErrInvalidDateOrder = errors.New("maturity date must be after the settlement date")

	// ErrInvalidMaturityDate is returned when a maturity does not fall on
	// the bond type's coupon day/month calendar.
	ErrInvalidMaturityDate = errors.New("maturity date does not match the bond type coupon calendar")
)
