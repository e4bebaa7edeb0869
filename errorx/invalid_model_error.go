package errorx

import "fmt"

// InvalidModelErrorf creates an Error with type ErrorTypeInvalidModel and a formatted message
func InvalidModelErrorf(format string, args ...any) *Error {
	return newWithStack(
		ErrorTypeInvalidModel,
		fmt.Sprintf(format, args...),
	)
}

func IsInvalidModelError(e error) bool {
	mE, ok := IsError(e)
	if !ok {
		return false
	}

	return mE.Type == ErrorTypeInvalidModel
}
