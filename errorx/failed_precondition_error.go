package errorx

import "fmt"

// FailedPreconditionErrorf creates an Error with type ErrorTypeFailedPrecondition and a formatted message
func FailedPreconditionErrorf(format string, args ...any) *Error {
	return newWithStack(
		ErrorTypeFailedPrecondition,
		fmt.Sprintf(format, args...),
	)
}

func IsFailedPreconditionError(e error) bool {
	mE, ok := IsError(e)
	if !ok {
		return false
	}

	return mE.Type == ErrorTypeFailedPrecondition
}
