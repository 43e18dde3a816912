// Package errx builds errors that carry a stable sentinel for errors.Is
// comparisons while still letting call sites attach situational detail.
package errx

import "fmt"

// wrapped pairs a sentinel with added context. It implements Is so
// errors.Is(err, ErrXxx) keeps matching no matter how much detail was
// appended at the call site, and Unwrap so any %w verb in the detail
// format still chains to the underlying cause.
type wrapped struct {
	sentinel error
	msg      string
	cause    error
}

func (e *wrapped) Error() string { return e.msg }

func (e *wrapped) Is(target error) bool { return target == e.sentinel }

func (e *wrapped) Unwrap() error { return e.cause }

// With returns sentinel decorated with a formatted detail suffix appended
// to the sentinel's own message. format may use a %w verb to additionally
// wrap a causing error; errors.Is(result, sentinel) and
// errors.Is(result, cause) both hold.
func With(sentinel error, format string, args ...any) error {
	detail := fmt.Errorf(format, args...)
	return &wrapped{
		sentinel: sentinel,
		msg:      sentinel.Error() + detail.Error(),
		cause:    unwrapOnce(detail),
	}
}

// Wrap returns sentinel decorated with cause's message, preserving both
// sentinel and cause for errors.Is/errors.As.
func Wrap(sentinel error, cause error) error {
	if cause == nil {
		return sentinel
	}
	return &wrapped{
		sentinel: sentinel,
		msg:      sentinel.Error() + ": " + cause.Error(),
		cause:    cause,
	}
}

// unwrapOnce extracts the %w-wrapped error from a fmt.Errorf result, if
// any, so detail formatting that embeds a cause still participates in the
// Unwrap chain.
func unwrapOnce(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}
