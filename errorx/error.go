package errorx

import (
	"fmt"
	"regexp"

	"github.com/pkg/errors"
)

// Error is the domain error carried across the godastic API surface.
// Transport errors from the underlying elasticsearch client are translated
// into one of these at the boundary for the enumerated cases; everything
// else propagates unchanged.
type Error struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`

	OriginalError error // Not returned to clients

	stack error
}

var (
	_ error         = (*Error)(nil)
	_ fmt.Formatter = (*Error)(nil)
)

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Type.String(), e.Message)
}

func (e *Error) Unwrap() error {
	return e.OriginalError
}

// Format prints the creation stack when formatted with %+v.
func (e *Error) Format(s fmt.State, verb rune) {
	fmt.Fprint(s, e.Error())
	if verb == 'v' && s.Flag('+') {
		if st, ok := e.stack.(interface{ StackTrace() errors.StackTrace }); ok {
			st.StackTrace().Format(s, verb)
		}
	}
}

func newWithStack(t ErrorType, message string) *Error {
	return &Error{
		Type:    t,
		Message: message,
		stack:   errors.New(message),
	}
}

// WithOrigin attaches the underlying transport error without changing the
// message returned to clients.
func (e *Error) WithOrigin(err error) *Error {
	e.OriginalError = err
	return e
}

var errMessagePattern = regexp.MustCompile(`\[(.*?)\] (.*)`)

// NewErrorFromMessage parses an error message in the "[TYPE] message" form
// produced by Error.Error.
func NewErrorFromMessage(msg string) (*Error, error) {
	m := errMessagePattern.FindStringSubmatch(msg)
	if m == nil || len(m) < 2 {
		return nil, fmt.Errorf("%q is not a valid error message", msg)
	}

	eT, err := ParseErrorType(m[1])
	if err != nil {
		return nil, err
	}

	if len(m) >= 3 {
		msg = m[2]
	}

	return &Error{
		Type:    eT,
		Message: msg,
	}, nil
}

// IsError reports whether e (or its cause) is a typed godastic error.
func IsError(e error) (*Error, bool) {
	e = errors.Cause(e)
	mE, ok := e.(*Error)
	if !ok {
		return nil, false
	}

	if mE.Type == ErrorTypeUnspecified {
		return nil, false
	}

	return mE, true
}
