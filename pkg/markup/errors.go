package markup

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTemplate classifies stored markup that could not be
	// reconstructed and was kept as literal text.
	ErrMalformedTemplate = errors.New("markup: malformed template")
	// ErrUnsupportedFormat classifies formatting dropped because it is outside
	// the whitelist.
	ErrUnsupportedFormat = errors.New("markup: unsupported format")
	// ErrUnsupportedElement classifies elements whose tags were ignored.
	ErrUnsupportedElement = errors.New("markup: unsupported element")
)

// Warning is a recoverable load problem. Loading never fails; callers surface
// warnings to the user instead.
type Warning struct {
	Err    error  `json:"-"`
	Detail string `json:"detail"`
}

func (w Warning) Error() string {
	if w.Detail == "" {
		return w.Err.Error()
	}
	return fmt.Sprintf("%v: %s", w.Err, w.Detail)
}

func (w Warning) Unwrap() error { return w.Err }

// MarshalText renders the warning message for JSON payloads.
func (w Warning) MarshalText() ([]byte, error) {
	return []byte(w.Error()), nil
}
