package sink

import (
	"errors"
	"fmt"
	"io"

	"github.com/mordilloSan/go-logcore/logger"
)

// Fallback writes to Primary and, when that fails, writes a notice plus the
// line to Secondary. The primary error is still returned so the Logger
// reports it; Secondary only keeps the line from being lost.
type Fallback struct {
	Primary   logger.Sink
	Secondary logger.Sink
}

// Write implements logger.Sink.
func (f Fallback) Write(line string, severity logger.Severity) error {
	err := f.Primary.Write(line, severity)
	if err == nil || f.Secondary == nil {
		return err
	}
	notice := fmt.Sprintf("primary log sink failed: %v", err)
	if serr := f.Secondary.Write(notice, logger.ErrorLevel); serr != nil {
		return errors.Join(err, serr)
	}
	if serr := f.Secondary.Write(line, severity); serr != nil {
		return errors.Join(err, serr)
	}
	return err
}

// Close closes both sinks when they implement io.Closer.
func (f Fallback) Close() error {
	return Multi{f.Primary, f.Secondary}.Close()
}

var _ io.Closer = Fallback{}
