package signals

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// defaultGracefulTimeout is the maximum total time to wait for pre-shutdown
// handlers to complete before proceeding with interrupt handlers.
const defaultGracefulTimeout = 30 * time.Second

var (
	preShutdownMu       sync.RWMutex
	preShutdownHandlers []registeredHandler
	preShutdownNextID   HandlerID
	gracefulTimeout     = defaultGracefulTimeout
)

// RegisterPreShutdownHandler registers a handler that runs BEFORE the interrupt
// handlers during graceful shutdown. This is the appropriate place to register
// client teardown callbacks, such as disconnecting live discovery clients so
// the engine releases their sessions before the process exits.
//
// Pre-shutdown handlers run in registration order (FIFO) and each handler is
// protected against panics. A handler that hangs past its share of the
// graceful timeout is abandoned; subsequent handlers still run.
//
// Returns a HandlerID for DeregisterPreShutdownHandler. Nil handlers are
// silently ignored and return -1.
func RegisterPreShutdownHandler(f Handler) HandlerID {
	if f == nil {
		return -1
	}
	preShutdownMu.Lock()
	defer preShutdownMu.Unlock()
	id := preShutdownNextID
	preShutdownNextID++
	preShutdownHandlers = append(preShutdownHandlers, registeredHandler{id: id, fn: f})
	return id
}

// DeregisterPreShutdownHandler removes a previously registered pre-shutdown
// handler by ID.
func DeregisterPreShutdownHandler(id HandlerID) {
	preShutdownMu.Lock()
	defer preShutdownMu.Unlock()
	for i, h := range preShutdownHandlers {
		if h.id == id {
			preShutdownHandlers = append(preShutdownHandlers[:i], preShutdownHandlers[i+1:]...)
			return
		}
	}
}

// SetGracefulTimeout configures the maximum total time to wait for
// pre-shutdown handlers to complete. If zero or negative, defaults to 30
// seconds.
func SetGracefulTimeout(timeout time.Duration) {
	preShutdownMu.Lock()
	defer preShutdownMu.Unlock()
	if timeout <= 0 {
		gracefulTimeout = defaultGracefulTimeout
	} else {
		gracefulTimeout = timeout
	}
}

// handlePreShutdown runs all registered pre-shutdown handlers in order.
// The graceful timeout is divided evenly between the handlers; a handler that
// exceeds its share is abandoned and the chain continues. Returns true if
// every handler completed.
func handlePreShutdown() bool {
	preShutdownMu.RLock()
	snapshot := make([]registeredHandler, len(preShutdownHandlers))
	copy(snapshot, preShutdownHandlers)
	timeout := gracefulTimeout
	preShutdownMu.RUnlock()

	if len(snapshot) == 0 {
		return true
	}

	perHandler := timeout / time.Duration(len(snapshot))
	completed := true

	for _, h := range snapshot {
		done := make(chan struct{})
		go func(fn Handler) {
			defer close(done)
			defer func() {
				if r := recover(); r != nil {
					fmt.Fprintf(os.Stderr, "signals: panic in pre-shutdown handler: %v\n", r)
				}
			}()
			fn()
		}(h.fn)

		select {
		case <-done:
		case <-time.After(perHandler):
			fmt.Fprintf(os.Stderr, "signals: pre-shutdown handler timed out after %s\n", perHandler)
			completed = false
		}
	}

	return completed
}
