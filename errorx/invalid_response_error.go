package errorx

import "fmt"

// InvalidResponseErrorf creates an Error with type ErrorTypeInvalidResponse and a formatted message
func InvalidResponseErrorf(format string, args ...any) *Error {
	return newWithStack(
		ErrorTypeInvalidResponse,
		fmt.Sprintf(format, args...),
	)
}

func IsInvalidResponseError(e error) bool {
	mE, ok := IsError(e)
	if !ok {
		return false
	}

	return mE.Type == ErrorTypeInvalidResponse
}
