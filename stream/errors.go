package stream

// CallbackError wraps a panic raised inside a consumer-supplied callback.
// There is no downstream subscriber to deliver it to, so it is reported to
// the fallback hook instead.
type CallbackError struct {
	//Channel is the delivery channel that paniced: next, error or complete
	Channel string
	Err     error
}

func (e *CallbackError) Error() string {
	return "callback panic on " + e.Channel + ": " + e.Err.Error()
}

func (e *CallbackError) Unwrap() error {
	return e.Err
}

func (e *CallbackError) Cause() error {
	return e.Err
}
