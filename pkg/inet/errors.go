package inet

import (
	"errors"
	"fmt"
)

// Parse failure rules. [ErrOctetOutOfRange] and [ErrMaskOutOfRange] share
// their message text but keep distinct identities so callers can tell octet
// and mask failures apart with errors.Is.
var (
	ErrExpectedNumber  = errors.New("expected a number")
	ErrOctetOutOfRange = errors.New("expected a number between 0 and 255")
	ErrExpectedDot     = errors.New("expected a dot")
	ErrExpectedSlash   = errors.New("expected a slash")
	ErrMaskOutOfRange  = errors.New("expected a number between 0 and 255")
)

// parseError wraps a rule violation together with the full input:
//
//	failed to convert string "10.0.0" to inet: expected a dot
func parseError(data []byte, err error) error {
	return fmt.Errorf("failed to convert string %q to inet: %w", data, err)
}
