package kafka

// PermanentError marks a lifecycle event that can never be handled.
// The consumer commits its offset and moves on instead of redelivering it.
type PermanentError struct {
	Err error
}

func (e PermanentError) Error() string {
	if e.Err == nil {
		return "permanent error"
	}
	return "permanent: " + e.Err.Error()
}

func (e PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err so the consumer skips the event that caused it.
func Permanent(err error) error {
	return PermanentError{Err: err}
}
