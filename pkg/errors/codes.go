package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"
	// GeneralRepositoryError represents a generic repository error.
	GeneralRepositoryError ErrorCode = "general_repository_error"

	// ErrEmptyQuoteStream is returned when the resampler is given a quote
	// stream with no messages. The series span cannot be determined without
	// at least one quote.
	ErrEmptyQuoteStream ErrorCode = "empty_quote_stream"
	// ErrUnsortedTickStream is returned by loaders that detect out-of-order
	// timestamps. Sort order is the loader's contract; the resampler itself
	// does not validate it.
	ErrUnsortedTickStream ErrorCode = "unsorted_tick_stream"
	// ErrBoundaryRowNotFound is returned when no series row matches a
	// requested open or close anchor timestamp exactly.
	ErrBoundaryRowNotFound ErrorCode = "boundary_row_not_found"
	// ErrArtifactNotFound is returned when a requested object store key does
	// not exist.
	ErrArtifactNotFound ErrorCode = "artifact_not_found"
	// ErrUniverseDateNotFound is returned when no universe file exists on or
	// prior to a requested date.
	ErrUniverseDateNotFound ErrorCode = "universe_date_not_found"
)
