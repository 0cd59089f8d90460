package errors

// ErrorCode classifies application errors for API responses and logs.
type ErrorCode int

const (
	ErrorCode_INTERNAL ErrorCode = iota
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_PROVIDER_UNAVAILABLE
	ErrorCode_STORAGE_FAILURE
)

// String returns the wire name of the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrorCode_INVALID_ARGUMENT:
		return "INVALID_ARGUMENT"
	case ErrorCode_NOT_FOUND:
		return "NOT_FOUND"
	case ErrorCode_PROVIDER_UNAVAILABLE:
		return "PROVIDER_UNAVAILABLE"
	case ErrorCode_STORAGE_FAILURE:
		return "STORAGE_FAILURE"
	default:
		return "INTERNAL"
	}
}
