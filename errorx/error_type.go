package errorx

type ErrorType string

const (
	// The Unspecified type should not be used, only useful to assert whether or not an error is a typed error during cast
	ErrorTypeUnspecified        = ErrorType("")
	ErrorTypeNotFound           = ErrorType("NOT_FOUND")
	ErrorTypeInvalidModel       = ErrorType("INVALID_MODEL")
	ErrorTypeFailedPrecondition = ErrorType("FAILED_PRECONDITION")
	ErrorTypeNotInitialized     = ErrorType("NOT_INITIALIZED")
	ErrorTypeInvalidResponse    = ErrorType("INVALID_RESPONSE")
	ErrorTypeInternal           = ErrorType("INTERNAL")
	ErrorTypeBulk               = ErrorType("BULK")
)

func ParseErrorType(s string) (ErrorType, error) {
	e := ErrorType(s)
	if err := e.Validate(); err != nil {
		return ErrorTypeUnspecified, err
	}

	return e, nil
}

func (e ErrorType) String() string {
	return string(e)
}

func (e ErrorType) Validate() error {
	switch e {
	case ErrorTypeNotFound,
		ErrorTypeInvalidModel,
		ErrorTypeFailedPrecondition,
		ErrorTypeNotInitialized,
		ErrorTypeInvalidResponse,
		ErrorTypeInternal,
		ErrorTypeBulk:
		return nil
	default:
		return InternalErrorf("invalid error type: %s", e)
	}
}
