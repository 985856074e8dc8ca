package apierrors

// HTTP 400 Bad Request.
const (
	ErrInvalidDateFormat = "INVALID_DATE_FORMAT"
	ErrInvalidQuery      = "INVALID_QUERY_PARAMETERS"
)

// HTTP 500 Internal Server Error.
const (
	// ErrInconsistentAggregation: the grouped-count queries returned rows
	// that do not sum to their own totals row.
	ErrInconsistentAggregation = "INCONSISTENT_AGGREGATION"
)
