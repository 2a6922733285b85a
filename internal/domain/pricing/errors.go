package pricing

import (
	"fmt"

	"lodge-booking/internal/pkg/errs"
)

var (
	// ErrConfiguration blocks the booking flow; a price is never defaulted to zero.
	ErrConfiguration = errs.New("pricing configuration error")
	ErrInvalidInput  = errs.New("invalid pricing input")
	ErrUnknownMode   = errs.New("unknown pricing mode")
)

// ConfigurationError names the settings path that is missing or unusable.
type ConfigurationError struct {
	Path   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("pricing configuration %s: %s", e.Path, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func missing(path string) error {
	return &ConfigurationError{Path: path, Reason: "not configured"}
}

func invalidInput(format string, args ...any) error {
	return errs.Mark(errs.Newf(format, args...), ErrInvalidInput)
}
