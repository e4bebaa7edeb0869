package errorx

import "fmt"

// NotInitializedErrorf creates an Error with type ErrorTypeNotInitialized and a formatted message
func NotInitializedErrorf(format string, args ...any) *Error {
	return newWithStack(
		ErrorTypeNotInitialized,
		fmt.Sprintf(format, args...),
	)
}

func IsNotInitializedError(e error) bool {
	mE, ok := IsError(e)
	if !ok {
		return false
	}

	return mE.Type == ErrorTypeNotInitialized
}
