package observer

// Observer is the three-channel consumer of a stream: zero or more Next
// calls followed by exactly one Error or Complete.
type Observer[T any] interface {
	Next(value T)
	Error(err error)
	Complete()
}

// Funcs adapts plain callbacks to an Observer. Nil callbacks are no-ops.
type Funcs[T any] struct {
	OnNext     func(value T)
	OnError    func(err error)
	OnComplete func()
}

func (f Funcs[T]) Next(value T) {
	if f.OnNext != nil {
		f.OnNext(value)
	}
}

func (f Funcs[T]) Error(err error) {
	if f.OnError != nil {
		f.OnError(err)
	}
}

func (f Funcs[T]) Complete() {
	if f.OnComplete != nil {
		f.OnComplete()
	}
}

type Noop[T any] struct{}

func (n Noop[T]) Next(_ T) {}

func (n Noop[T]) Error(_ error) {}

func (n Noop[T]) Complete() {}
