// Package hook holds the process-wide fallback error handler. Errors that
// have no downstream subscriber left to deliver to (callback panics, teardown
// failures, subject errors with no observers) end up here instead of being
// silently dropped.
package hook

import (
	"sync"

	"github.com/flowrx/reactive/log"
)

type Handler func(err error)

var (
	mutex   = &sync.Mutex{}
	handler Handler
)

// Register installs the fallback handler, replacing any previous one.
func Register(h Handler) {
	mutex.Lock()
	defer mutex.Unlock()
	handler = h
}

// Reset restores the default logging handler.
func Reset() {
	mutex.Lock()
	defer mutex.Unlock()
	handler = nil
}

// Report delivers err to the registered handler, or logs it when no handler
// was registered.
func Report(err error) {
	if err == nil {
		return
	}
	mutex.Lock()
	h := handler
	mutex.Unlock()
	if h != nil {
		h(err)
		return
	}
	log.Global().Named("hook").Errorf("unhandled stream error: %+v", err)
}
