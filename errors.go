package gridplot

import "github.com/pkg/errors"

// ErrInvalidConfig is wrapped by every error returned for an invalid
// configuration value.
var ErrInvalidConfig = errors.New("invalid configuration")

// Invalidf returns an error wrapping ErrInvalidConfig which names the
// offending value.
func Invalidf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidConfig, format, args...)
}
