package palette

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for malformed geometry, style values,
	// path tokens and numeric literals.
	ErrInvalidArgument = errors.New("palette: invalid argument")

	// ErrUnsupportedFormat is returned when an export type has no encoder.
	ErrUnsupportedFormat = errors.New("palette: unsupported format")

	// ErrStop can be returned from a FrameFunc to end Animate without error.
	ErrStop = errors.New("palette: stop animation")
)

// invalidf wraps ErrInvalidArgument with a formatted description.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("palette: "+format+": %w", append(args, ErrInvalidArgument)...)
}

// PathError reports a path-language token that could not be interpreted.
type PathError struct {
	Pos   int    // zero-based token index
	Token string // offending token text
	Err   error  // underlying cause; always matches ErrInvalidArgument
}

func (e *PathError) Error() string {
	return fmt.Sprintf("palette: path token %d %q: %v", e.Pos, e.Token, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}
