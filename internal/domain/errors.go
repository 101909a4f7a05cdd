package domain

import (
	"errors"
	"fmt"
)

var (
	// Entry errors
	ErrMissingAmount    = errors.New("missing amount")
	ErrNegativeAmount   = errors.New("amount must not be negative")
	ErrUnknownEntryType = errors.New("unknown entry type")
)

// AccountLockedError is returned when an entry targets an account frozen by a chargeback.
type AccountLockedError struct {
	Client ClientID
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("client account %d is locked", e.Client)
}

// IsAccountLocked reports whether err is, or wraps, an AccountLockedError.
func IsAccountLocked(err error) bool {
	var lockedErr *AccountLockedError
	return errors.As(err, &lockedErr)
}
