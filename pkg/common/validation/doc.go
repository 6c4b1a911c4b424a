// Package validation provides common validation utilities for configuration
// parameters and call arguments across the thpool library.
//
// Each helper returns a *errors.ValidationError so callers can match the
// failure with errors.Is(err, errors.ErrInvalidConfiguration).
package validation
