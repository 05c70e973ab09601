package facade

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument reports a nil or malformed input to the factory or to an
// instance dispatch call. Match with errors.Is.
var ErrInvalidArgument = errors.New("facade: invalid argument")

// ErrUnsupportedOperation reports invocation of a member that could not be
// resolved against the wrapped type. It is raised only at call time, never
// while an adapter type is generated. Match with errors.Is.
var ErrUnsupportedOperation = errors.New("facade: unsupported operation")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func unsupportedf(member string) error {
	return fmt.Errorf("%w: member %q has no resolved target", ErrUnsupportedOperation, member)
}
