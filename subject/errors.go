package subject

// UnhandledError records an Error delivered to a subject that had zero
// observers. The subject still transitions to its errored state; the error
// itself is surfaced through the fallback hook wearing this wrapper.
type UnhandledError struct {
	Err error
}

func (e *UnhandledError) Error() string {
	return "subject errored with no observers: " + e.Err.Error()
}

func (e *UnhandledError) Unwrap() error {
	return e.Err
}

func (e *UnhandledError) Cause() error {
	return e.Err
}
