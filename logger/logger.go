package logger

import (
	"errors"
	"io"
	"slices"
	"sync"
	"time"
)

// Sink emits one formatted line. Implementations may fail; the Logger
// returns the failure to its caller wrapped in a *SinkWriteError.
type Sink interface {
	Write(line string, severity Severity) error
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(line string, severity Severity) error

// Write calls f.
func (f SinkFunc) Write(line string, severity Severity) error {
	return f(line, severity)
}

// WriterSink writes each line, newline-terminated, to an io.Writer.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink returns a Sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Write writes line followed by a newline.
func (s *WriterSink) Write(line string, _ Severity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.w, line+"\n")
	return err
}

// Observer receives one callback per outcome of a log call. Calls are made
// while the Logger's lock is held and must not call back into the Logger.
type Observer interface {
	// Written is called after a line reached the sink.
	Written(Severity)
	// Suppressed is called for a repeat folded into the pending record.
	Suppressed(Severity)
	// Filtered is called for entries below the minimum severity.
	Filtered(Severity)
	// SinkFailed is called when the sink returned an error.
	SinkFailed(Severity)
}

type nopObserver struct{}

func (nopObserver) Written(Severity)    {}
func (nopObserver) Suppressed(Severity) {}
func (nopObserver) Filtered(Severity)   {}
func (nopObserver) SinkFailed(Severity) {}

// Config defines options for NewFromConfig.
type Config struct {
	// MinSeverity is the inclusive floor: entries at this severity or more
	// severe are written. Unknown names make NewFromConfig fail.
	// Default: "debug"
	MinSeverity string
	// DisableDeduplication writes every entry immediately instead of
	// collapsing consecutive repeats.
	// Default: false (deduplication enabled)
	DisableDeduplication bool
}

// Option configures a Logger built by New.
type Option func(*Logger)

// WithMinSeverity sets the inclusive severity floor. Default: DebugLevel.
func WithMinSeverity(s Severity) Option {
	return func(l *Logger) { l.minSeverity = s }
}

// WithDeduplication enables or disables collapsing of consecutive
// identical entries. Default: enabled.
func WithDeduplication(enabled bool) Option {
	return func(l *Logger) { l.dedup.enabled = enabled }
}

// WithClock replaces time.Now for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

// WithStackSource replaces the runtime stack used for caller attribution.
func WithStackSource(stack StackSource) Option {
	return func(l *Logger) { l.resolver = NewCallerResolver(stack) }
}

// WithObserver registers an Observer, e.g. a metrics collector.
func WithObserver(o Observer) Option {
	return func(l *Logger) {
		if o != nil {
			l.observer = o
		}
	}
}

// Logger filters entries by severity, collapses consecutive repeats,
// attributes each entry to its caller and forwards formatted lines to a
// Sink. It is safe for concurrent use; entries from one goroutine keep
// their order except that repeats are held back until the next flush.
type Logger struct {
	mu          sync.Mutex
	sink        Sink
	minSeverity Severity
	dedup       deduplicator
	now         func() time.Time
	resolver    *CallerResolver
	observer    Observer
}

// New returns a Logger writing to sink. Without options it logs everything
// (minimum severity DebugLevel) with deduplication enabled.
func New(sink Sink, opts ...Option) *Logger {
	l := &Logger{
		sink:        sink,
		minSeverity: DebugLevel,
		dedup:       deduplicator{enabled: true},
		now:         time.Now,
		observer:    nopObserver{},
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.resolver == nil {
		l.resolver = NewCallerResolver(nil)
	}
	return l
}

// NewFromConfig builds a Logger from cfg. An unknown MinSeverity fails
// with ErrInvalidSeverity.
func NewFromConfig(sink Sink, cfg Config, opts ...Option) (*Logger, error) {
	minSeverity := DebugLevel
	if cfg.MinSeverity != "" {
		s, err := ParseSeverity(cfg.MinSeverity)
		if err != nil {
			return nil, err
		}
		minSeverity = s
	}
	base := []Option{WithMinSeverity(minSeverity), WithDeduplication(!cfg.DisableDeduplication)}
	return New(sink, append(base, opts...)...), nil
}

// Resolver exposes the caller resolver, e.g. to register wrapper functions
// with AddInternal.
func (l *Logger) Resolver() *CallerResolver {
	return l.resolver
}

// Log records msg at severity s with key/value context pairs.
func (l *Logger) Log(s Severity, msg string, keyvals ...any) error {
	return l.log(s, msg, KV(keyvals...))
}

// LogContext records msg at severity s with an explicit Context.
func (l *Logger) LogContext(s Severity, msg string, ctx Context) error {
	return l.log(s, msg, ctx)
}

// LogLevel is Log with the severity given by name. Unknown names fail with
// ErrInvalidSeverity before anything else happens.
func (l *Logger) LogLevel(name string, msg string, keyvals ...any) error {
	s, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	return l.log(s, msg, KV(keyvals...))
}

func (l *Logger) log(s Severity, msg string, ctx Context) error {
	if err := checkSeverity(s); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if s > l.minSeverity {
		l.observer.Filtered(s)
		return nil
	}

	d := l.dedup.submit(s, msg, ctx, func() Record {
		return Record{
			Severity: s,
			Message:  msg,
			Context:  slices.Clone(ctx),
			Time:     l.now(),
			Caller:   l.resolver.Resolve(0),
			verbose:  l.minSeverity == DebugLevel,
		}
	})
	switch d.kind {
	case suppressed:
		l.observer.Suppressed(s)
		return nil
	case buffered:
		return nil
	}
	return l.writeLocked(d.record)
}

// ShouldLog reports whether an entry at severity s would pass the filter.
// Out-of-range values report false rather than an error; Log and the
// dispatch entry points reject them with ErrInvalidSeverity.
func (l *Logger) ShouldLog(s Severity) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return s.Valid() && s <= l.minSeverity
}

// MinSeverity returns the current severity floor.
func (l *Logger) MinSeverity() Severity {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.minSeverity
}

// SetMinSeverity changes the severity floor.
func (l *Logger) SetMinSeverity(s Severity) error {
	if err := checkSeverity(s); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minSeverity = s
	return nil
}

// SetMinSeverityName changes the severity floor by name.
func (l *Logger) SetMinSeverityName(name string) error {
	s, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	return l.SetMinSeverity(s)
}

// Deduplication reports whether consecutive repeats are collapsed.
func (l *Logger) Deduplication() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dedup.enabled
}

// SetDeduplication turns collapsing on or off. Turning it off writes the
// pending record first, so nothing buffered is dropped.
func (l *Logger) SetDeduplication(enabled bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var err error
	if l.dedup.enabled && !enabled {
		err = l.flushLocked()
	}
	l.dedup.enabled = enabled
	return err
}

// Pending reports how many occurrences the buffered record stands for;
// 0 means nothing is buffered.
func (l *Logger) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dedup.pendingCount()
}

// Flush writes the buffered record, if any, with its repeat suffix.
// Lines held back by deduplication only become visible after a flush or
// after a different entry arrives.
func (l *Logger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.flushLocked()
}

// Close flushes and then closes the sink when it implements io.Closer.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.flushLocked()
	if c, ok := l.sink.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}

func (l *Logger) flushLocked() error {
	r, ok := l.dedup.flush()
	if !ok {
		return nil
	}
	return l.writeLocked(r)
}

func (l *Logger) writeLocked(r Record) error {
	line := FormatEntry(r, r.verbose)
	if err := l.sink.Write(line, r.Severity); err != nil {
		l.observer.SinkFailed(r.Severity)
		return &SinkWriteError{Severity: r.Severity, Line: line, Err: err}
	}
	l.observer.Written(r.Severity)
	return nil
}
