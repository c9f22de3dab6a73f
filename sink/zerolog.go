package sink

import (
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mordilloSan/go-logcore/logger"
)

var zerologLevels = map[logger.Severity]zerolog.Level{
	logger.EmergencyLevel: zerolog.FatalLevel,
	logger.AlertLevel:     zerolog.FatalLevel,
	logger.CriticalLevel:  zerolog.ErrorLevel,
	logger.ErrorLevel:     zerolog.ErrorLevel,
	logger.WarningLevel:   zerolog.WarnLevel,
	logger.NoticeLevel:    zerolog.InfoLevel,
	logger.InfoLevel:      zerolog.InfoLevel,
	logger.DebugLevel:     zerolog.DebugLevel,
}

// ZerologLevel maps a severity onto the nearest zerolog level.
func ZerologLevel(s logger.Severity) zerolog.Level {
	if l, ok := zerologLevels[s]; ok {
		return l
	}
	return zerolog.NoLevel
}

// Zerolog forwards formatted lines to a zerolog.Logger. The original
// severity name is kept in the "severity" field. Emergency and alert lines
// are written at fatal level without exiting the process.
type Zerolog struct {
	mu sync.Mutex
	zl zerolog.Logger
	w  *errorRecorder
}

// NewZerolog returns a sink writing through zl with its output replaced by
// w. Level, context fields and hooks of zl are kept. Write failures of w
// are returned from Write instead of going to zerolog's error handler.
func NewZerolog(zl zerolog.Logger, w io.Writer) *Zerolog {
	rec := &errorRecorder{w: w}
	return &Zerolog{zl: zl.Output(rec), w: rec}
}

// Write implements logger.Sink.
func (z *Zerolog) Write(line string, severity logger.Severity) error {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.w.err = nil
	z.zl.WithLevel(ZerologLevel(severity)).
		Str("severity", severity.String()).
		Msg(line)
	return z.w.err
}

// errorRecorder remembers the last failure of the wrapped writer.
type errorRecorder struct {
	w   io.Writer
	err error
}

func (e *errorRecorder) Write(p []byte) (int, error) {
	n, err := e.w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		e.err = err
	}
	return n, err
}
