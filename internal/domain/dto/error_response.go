package dto

// ErrorResponse is the standardized JSON error body returned by all
// endpoints and middleware.
//
// ErrorDetails carries the underlying error text when one exists. Handlers
// must not put raw SQL or connection strings here; they pass a stable
// message plus the wrapped error.
type ErrorResponse struct {
	Message      string `json:"message" example:"failed to fetch tickers"`
	ErrorDetails string `json:"error,omitempty" example:"connection refused"`
}

// NewErrorResponse builds an ErrorResponse from a message and an optional
// underlying error.
func NewErrorResponse(message string, err error) ErrorResponse {
	e := ErrorResponse{Message: message}
	if err != nil {
		e.ErrorDetails = err.Error()
	}
	return e
}

// Error implements the error interface so ErrorResponse can travel through
// gin's error list.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}
