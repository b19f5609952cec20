package nomina

import "errors"

// The computation never fails for malformed individual records — those are
// dropped or zero-filled during normalization. Only a structurally invalid
// request surfaces as an error.
var (
	// ErrMissingDateRange is returned when the caller supplies no start or
	// end date at all.
	ErrMissingDateRange = errors.New("missing start/end date")

	// ErrInvalidDateRange is returned when a supplied start/end date cannot
	// be parsed by any accepted format, or when start falls after end.
	ErrInvalidDateRange = errors.New("invalid start/end date")

	// ErrUnknownTimezone is returned when the timezone identifier is not in
	// the tz database.
	ErrUnknownTimezone = errors.New("unknown timezone")
)

// IsClientError reports whether the error is the caller's fault (bad
// request data rather than an engine failure).
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingDateRange) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrUnknownTimezone)
}
