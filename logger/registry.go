package logger

import "sync"

// Registry holds at most one Logger shared by call sites that were never
// handed one explicitly. The zero value is empty and ready to use.
type Registry struct {
	mu     sync.RWMutex
	logger *Logger
}

// Set installs l, replacing any previous Logger without flushing it.
func (r *Registry) Set(l *Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = l
}

// Get returns the held Logger or nil.
func (r *Registry) Get() *Logger {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.logger
}

// Has reports whether a Logger is held.
func (r *Registry) Has() bool {
	return r.Get() != nil
}

// Reset empties the registry and flushes the Logger it held, so repeats
// buffered for deduplication are written rather than lost.
func (r *Registry) Reset() error {
	r.mu.Lock()
	l := r.logger
	r.logger = nil
	r.mu.Unlock()
	if l == nil {
		return nil
	}
	return l.Flush()
}

var shared Registry

// SetShared installs l as the process-wide Logger used by the package-level
// functions and by Dispatchers without their own Logger. Call it once from
// main.
func SetShared(l *Logger) {
	shared.Set(l)
}

// Shared returns the process-wide Logger, or nil when none is set.
func Shared() *Logger {
	return shared.Get()
}

// HasShared reports whether a process-wide Logger is set.
func HasShared() bool {
	return shared.Has()
}

// ResetShared flushes and removes the process-wide Logger. It exists for
// test isolation; production code sets the shared Logger once.
func ResetShared() error {
	return shared.Reset()
}
