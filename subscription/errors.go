package subscription

// TeardownError wraps one or more cleanup failures collected while
// canceling a subscription.
type TeardownError struct {
	Err error
}

func (e *TeardownError) Error() string {
	return "teardown failed: " + e.Err.Error()
}

func (e *TeardownError) Unwrap() error {
	return e.Err
}

func (e *TeardownError) Cause() error {
	return e.Err
}
