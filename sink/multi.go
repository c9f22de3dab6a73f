package sink

import (
	"errors"
	"io"

	"github.com/mordilloSan/go-logcore/logger"
)

// Multi writes every line to all of its sinks, in order. A failing sink
// does not stop the others; their errors are joined.
type Multi []logger.Sink

// Write implements logger.Sink.
func (m Multi) Write(line string, severity logger.Severity) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(line, severity); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink that implements io.Closer.
func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
