package logger

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)

// recordingSink keeps every line it receives.
type recordingSink struct {
	mu    sync.Mutex
	lines []string
	sevs  []Severity
	err   error
}

func (r *recordingSink) Write(line string, s Severity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.lines = append(r.lines, line)
	r.sevs = append(r.sevs, s)
	return nil
}

func (r *recordingSink) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// messages strips the "[ts] sev [caller]: " header from each line.
func (r *recordingSink) messages() []string {
	var out []string
	for _, line := range r.Lines() {
		_, msg, _ := strings.Cut(line, "]: ")
		out = append(out, msg)
	}
	return out
}

func newTestLogger(opts ...Option) (*Logger, *recordingSink) {
	rec := &recordingSink{}
	opts = append([]Option{WithClock(func() time.Time { return fixedTime })}, opts...)
	return New(rec, opts...), rec
}

func TestFilteringMonotonicity(t *testing.T) {
	for _, floor := range AllSeverities() {
		for _, s := range AllSeverities() {
			l, rec := newTestLogger(WithMinSeverity(floor), WithDeduplication(false))
			require.NoError(t, l.Log(s, "probe"))

			want := s.Rank() <= floor.Rank()
			assert.Equal(t, want, l.ShouldLog(s), "ShouldLog(%s) at floor %s", s, floor)
			assert.Equal(t, want, len(rec.Lines()) == 1, "write at %s with floor %s", s, floor)
		}
	}
}

func TestLevelFiltering_WarningFloor(t *testing.T) {
	l, rec := newTestLogger(WithMinSeverity(WarningLevel), WithDeduplication(false))

	require.NoError(t, l.Log(InfoLevel, "info-disabled"))
	require.NoError(t, l.Log(ErrorLevel, "error-enabled"))

	assert.Equal(t, []string{"error-enabled"}, rec.messages())
}

func TestDedupCollapse(t *testing.T) {
	l, rec := newTestLogger()
	for range 5 {
		require.NoError(t, l.Log(ErrorLevel, "Connection failed", "host", "db1"))
	}
	assert.Empty(t, rec.Lines(), "repeats stay buffered until flush")
	assert.Equal(t, 5, l.Pending())

	require.NoError(t, l.Flush())
	require.Len(t, rec.Lines(), 1)
	assert.Equal(t, `Connection failed (x5) {"host":"db1"}`, rec.messages()[0])
	assert.Equal(t, 0, l.Pending())
}

func TestDedupBoundaryOnChange(t *testing.T) {
	l, rec := newTestLogger()
	for _, msg := range []string{"A", "B", "A"} {
		require.NoError(t, l.Log(InfoLevel, msg))
	}
	require.NoError(t, l.Flush())

	assert.Equal(t, []string{"A", "B", "A"}, rec.messages())
}

func TestDedupKeyIncludesSeverityAndContext(t *testing.T) {
	l, rec := newTestLogger()
	require.NoError(t, l.Log(InfoLevel, "same"))
	require.NoError(t, l.Log(WarningLevel, "same"))
	require.NoError(t, l.Log(WarningLevel, "same", "k", 1))
	require.NoError(t, l.Log(WarningLevel, "same", "k", 2))
	require.NoError(t, l.Flush())

	assert.Len(t, rec.Lines(), 4)
}

func TestDisableDeduplicationFlushesPending(t *testing.T) {
	l, rec := newTestLogger()
	for range 3 {
		require.NoError(t, l.Log(InfoLevel, "Repeated"))
	}
	require.NoError(t, l.SetDeduplication(false))
	assert.Equal(t, []string{"Repeated (x3)"}, rec.messages())

	require.NoError(t, l.Log(InfoLevel, "Repeated"))
	assert.Equal(t, []string{"Repeated (x3)", "Repeated"}, rec.messages())
	assert.False(t, l.Deduplication())
}

func TestFlushWithoutPendingIsNoop(t *testing.T) {
	l, rec := newTestLogger()
	require.NoError(t, l.Flush())
	assert.Empty(t, rec.Lines())
}

func TestSingleEntryFlushHasNoSuffix(t *testing.T) {
	l, rec := newTestLogger()
	require.NoError(t, l.Log(NoticeLevel, "once"))
	require.NoError(t, l.Flush())
	assert.Equal(t, []string{"once"}, rec.messages())
}

func TestInvalidSeverity(t *testing.T) {
	l, rec := newTestLogger()

	assert.ErrorIs(t, l.Log(Severity(8), "x"), ErrInvalidSeverity)
	assert.ErrorIs(t, l.Log(Severity(-1), "x"), ErrInvalidSeverity)
	assert.ErrorIs(t, l.LogLevel("verbose", "x"), ErrInvalidSeverity)
	assert.ErrorIs(t, l.SetMinSeverity(Severity(99)), ErrInvalidSeverity)
	assert.ErrorIs(t, l.SetMinSeverityName("loud"), ErrInvalidSeverity)
	assert.False(t, l.ShouldLog(Severity(12)))

	require.NoError(t, l.Flush())
	assert.Empty(t, rec.Lines())
}

func TestNewFromConfig(t *testing.T) {
	l, err := NewFromConfig(&recordingSink{}, Config{MinSeverity: "WARN", DisableDeduplication: true})
	require.NoError(t, err)
	assert.Equal(t, WarningLevel, l.MinSeverity())
	assert.False(t, l.Deduplication())

	l, err = NewFromConfig(&recordingSink{}, Config{})
	require.NoError(t, err)
	assert.Equal(t, DebugLevel, l.MinSeverity())
	assert.True(t, l.Deduplication())

	_, err = NewFromConfig(&recordingSink{}, Config{MinSeverity: "chatty"})
	assert.ErrorIs(t, err, ErrInvalidSeverity)
}

func TestSetMinSeverityAtRuntime(t *testing.T) {
	l, rec := newTestLogger(WithDeduplication(false))
	require.NoError(t, l.SetMinSeverityName("error"))
	require.NoError(t, l.Log(WarningLevel, "hidden"))
	require.NoError(t, l.SetMinSeverity(WarningLevel))
	require.NoError(t, l.Log(WarningLevel, "shown"))

	assert.Equal(t, []string{"shown"}, rec.messages())
}

func TestSinkWriteErrorPropagates(t *testing.T) {
	errDisk := errors.New("disk full")
	l, rec := newTestLogger(WithDeduplication(false))
	rec.err = errDisk

	err := l.Log(CriticalLevel, "cannot persist")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSinkWrite)
	assert.ErrorIs(t, err, errDisk)

	var swe *SinkWriteError
	require.ErrorAs(t, err, &swe)
	assert.Equal(t, CriticalLevel, swe.Severity)
	assert.Contains(t, swe.Line, "cannot persist")
}

func TestSinkWriteErrorOnFlush(t *testing.T) {
	l, rec := newTestLogger()
	require.NoError(t, l.Log(InfoLevel, "buffered"))
	rec.err = errors.New("closed")

	assert.ErrorIs(t, l.Flush(), ErrSinkWrite)
	assert.Equal(t, 0, l.Pending(), "a failed flush does not retry")
}

type closingSink struct {
	recordingSink
	closed bool
}

func (c *closingSink) Close() error {
	c.closed = true
	return nil
}

func TestCloseFlushesAndClosesSink(t *testing.T) {
	s := &closingSink{}
	l := New(s, WithClock(func() time.Time { return fixedTime }))
	require.NoError(t, l.Log(InfoLevel, "tail"))
	require.NoError(t, l.Log(InfoLevel, "tail"))

	require.NoError(t, l.Close())
	assert.True(t, s.closed)
	require.Len(t, s.Lines(), 1)
	assert.True(t, strings.HasSuffix(s.Lines()[0], "tail (x2)"))
}

func TestVerboseCallerOnlyAtDebugFloor(t *testing.T) {
	l, rec := newTestLogger(WithDeduplication(false))
	require.NoError(t, l.Log(InfoLevel, "verbose"))
	require.NoError(t, l.SetMinSeverity(InfoLevel))
	require.NoError(t, l.Log(InfoLevel, "terse"))

	lines := rec.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[logger.TestVerboseCallerOnlyAtDebugFloor in ")
	assert.Contains(t, lines[0], "logger_behavior_test.go:")
	assert.Contains(t, lines[1], "[logger.TestVerboseCallerOnlyAtDebugFloor]: terse")
}

func TestLineLayout(t *testing.T) {
	l, rec := newTestLogger(WithMinSeverity(InfoLevel), WithDeduplication(false))
	require.NoError(t, l.Log(WarningLevel, "slow request", "path", "/api", "ms", 1250))

	assert.Equal(t,
		`[2024-03-09 14:05:06] warning [logger.TestLineLayout]: slow request {"path":"/api","ms":1250}`,
		rec.Lines()[0])
}

type observerCounts struct {
	written, suppressed, filtered, failed int
}

func (o *observerCounts) Written(Severity)    { o.written++ }
func (o *observerCounts) Suppressed(Severity) { o.suppressed++ }
func (o *observerCounts) Filtered(Severity)   { o.filtered++ }
func (o *observerCounts) SinkFailed(Severity) { o.failed++ }

func TestObserverCallbacks(t *testing.T) {
	obs := &observerCounts{}
	l, rec := newTestLogger(WithMinSeverity(NoticeLevel), WithObserver(obs))

	require.NoError(t, l.Log(DebugLevel, "filtered"))
	require.NoError(t, l.Log(ErrorLevel, "e"))
	require.NoError(t, l.Log(ErrorLevel, "e"))
	require.NoError(t, l.Log(ErrorLevel, "e"))
	require.NoError(t, l.Flush())
	rec.err = errors.New("gone")
	require.NoError(t, l.SetDeduplication(false))
	require.Error(t, l.Log(ErrorLevel, "lost"))

	assert.Equal(t, observerCounts{written: 1, suppressed: 2, filtered: 1, failed: 1}, *obs)
}

func TestBufferedRecordKeepsContextSnapshot(t *testing.T) {
	l, rec := newTestLogger()
	ctx := Context{{Key: "attempt", Value: 1}}

	require.NoError(t, l.LogContext(WarningLevel, "retry", ctx))
	ctx[0].Value = 2
	require.NoError(t, l.LogContext(WarningLevel, "retry", ctx))
	require.NoError(t, l.Flush())

	assert.Equal(t, []string{`retry {"attempt":1}`, `retry {"attempt":2}`}, rec.messages())
}

func TestDispatchedContextIsCopied(t *testing.T) {
	l, rec := newTestLogger()
	ctx := KV("step", "a")

	_, err := l.Dispatch(NoticeLevel, Standard, Args{Message: "step", Context: ctx})
	require.NoError(t, err)
	ctx[0].Value = "b"
	require.NoError(t, l.Flush())

	assert.Equal(t, []string{`step {"step":"a"}`}, rec.messages())
}

func TestBufferedRecordKeepsVerbosity(t *testing.T) {
	l, rec := newTestLogger()

	require.NoError(t, l.Log(InfoLevel, "held back"))
	require.NoError(t, l.SetMinSeverity(InfoLevel))
	require.NoError(t, l.Log(InfoLevel, "after"))
	require.NoError(t, l.Flush())

	lines := rec.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[logger.TestBufferedRecordKeepsVerbosity in ", "logged at the debug floor")
	assert.Contains(t, lines[1], "[logger.TestBufferedRecordKeepsVerbosity]: after")
}

func TestShouldLogOutOfRange(t *testing.T) {
	l, _ := newTestLogger()
	assert.True(t, l.ShouldLog(DebugLevel))
	assert.False(t, l.ShouldLog(Severity(8)))
	assert.False(t, l.ShouldLog(Severity(-1)))
	assert.ErrorIs(t, l.Log(Severity(8), "x"), ErrInvalidSeverity)
}
