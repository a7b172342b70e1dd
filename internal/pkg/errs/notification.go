package errs

import (
	"errors"
	"fmt"
)

var ErrNotificationFailed = errors.New("notification failed")

// NotificationFailedError is returned when a customer notification could not be
// delivered. Nothing is written when it is returned, so the caller may retry or decline.
type NotificationFailedError struct {
	Channel string
	Cause   error
}

func NewNotificationFailedError(channel string, cause error) *NotificationFailedError {
	return &NotificationFailedError{
		Channel: channel,
		Cause:   cause,
	}
}

func (e *NotificationFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: channel %s (cause: %v)", ErrNotificationFailed, e.Channel, e.Cause)
	}
	return fmt.Sprintf("%s: channel %s", ErrNotificationFailed, e.Channel)
}

func (e *NotificationFailedError) Unwrap() error {
	return ErrNotificationFailed
}
