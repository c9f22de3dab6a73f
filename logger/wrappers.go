package logger

import (
	"fmt"
	"runtime"
	"time"
)

// The methods below are the typed form of the dynamic
// log<Severity>[If|Unless|AndThrow] surface. Each one is a single Dispatch.

func (d Dispatcher) std(s Severity, msg string, keyvals []any) error {
	_, err := d.Dispatch(s, Standard, Args{Message: msg, Context: KV(keyvals...)})
	return err
}

func (d Dispatcher) cond(s Severity, v Variant, cond bool, msg string, keyvals []any) error {
	_, err := d.Dispatch(s, v, Args{Message: msg, Context: KV(keyvals...), Condition: cond})
	return err
}

func (d Dispatcher) throw(s Severity, factory ErrorFactory, msg string, ctx Context, cause error, code int) error {
	_, err := d.Dispatch(s, AndThrow, Args{Message: msg, Context: ctx, Factory: factory, Cause: cause, Code: code})
	return err
}

// Log records msg at severity s.
func (d Dispatcher) Log(s Severity, msg string, keyvals ...any) error {
	return d.std(s, msg, keyvals)
}

// Emergency logs msg at emergency severity.
func (d Dispatcher) Emergency(msg string, keyvals ...any) error {
	return d.std(EmergencyLevel, msg, keyvals)
}

// Alert logs msg at alert severity.
func (d Dispatcher) Alert(msg string, keyvals ...any) error {
	return d.std(AlertLevel, msg, keyvals)
}

// Critical logs msg at critical severity.
func (d Dispatcher) Critical(msg string, keyvals ...any) error {
	return d.std(CriticalLevel, msg, keyvals)
}

// Error logs msg at error severity.
func (d Dispatcher) Error(msg string, keyvals ...any) error {
	return d.std(ErrorLevel, msg, keyvals)
}

// Warning logs msg at warning severity.
func (d Dispatcher) Warning(msg string, keyvals ...any) error {
	return d.std(WarningLevel, msg, keyvals)
}

// Notice logs msg at notice severity.
func (d Dispatcher) Notice(msg string, keyvals ...any) error {
	return d.std(NoticeLevel, msg, keyvals)
}

// Info logs msg at info severity.
func (d Dispatcher) Info(msg string, keyvals ...any) error {
	return d.std(InfoLevel, msg, keyvals)
}

// Debug logs msg at debug severity.
func (d Dispatcher) Debug(msg string, keyvals ...any) error {
	return d.std(DebugLevel, msg, keyvals)
}

// EmergencyIf logs at emergency severity only when cond is true.
func (d Dispatcher) EmergencyIf(cond bool, msg string, keyvals ...any) error {
	return d.cond(EmergencyLevel, If, cond, msg, keyvals)
}

// EmergencyUnless logs at emergency severity only when cond is false.
func (d Dispatcher) EmergencyUnless(cond bool, msg string, keyvals ...any) error {
	return d.cond(EmergencyLevel, Unless, cond, msg, keyvals)
}

// AlertIf logs at alert severity only when cond is true.
func (d Dispatcher) AlertIf(cond bool, msg string, keyvals ...any) error {
	return d.cond(AlertLevel, If, cond, msg, keyvals)
}

// AlertUnless logs at alert severity only when cond is false.
func (d Dispatcher) AlertUnless(cond bool, msg string, keyvals ...any) error {
	return d.cond(AlertLevel, Unless, cond, msg, keyvals)
}

// CriticalIf logs at critical severity only when cond is true.
func (d Dispatcher) CriticalIf(cond bool, msg string, keyvals ...any) error {
	return d.cond(CriticalLevel, If, cond, msg, keyvals)
}

// CriticalUnless logs at critical severity only when cond is false.
func (d Dispatcher) CriticalUnless(cond bool, msg string, keyvals ...any) error {
	return d.cond(CriticalLevel, Unless, cond, msg, keyvals)
}

// ErrorIf logs at error severity only when cond is true.
func (d Dispatcher) ErrorIf(cond bool, msg string, keyvals ...any) error {
	return d.cond(ErrorLevel, If, cond, msg, keyvals)
}

// ErrorUnless logs at error severity only when cond is false.
func (d Dispatcher) ErrorUnless(cond bool, msg string, keyvals ...any) error {
	return d.cond(ErrorLevel, Unless, cond, msg, keyvals)
}

// WarningIf logs at warning severity only when cond is true.
func (d Dispatcher) WarningIf(cond bool, msg string, keyvals ...any) error {
	return d.cond(WarningLevel, If, cond, msg, keyvals)
}

// WarningUnless logs at warning severity only when cond is false.
func (d Dispatcher) WarningUnless(cond bool, msg string, keyvals ...any) error {
	return d.cond(WarningLevel, Unless, cond, msg, keyvals)
}

// NoticeIf logs at notice severity only when cond is true.
func (d Dispatcher) NoticeIf(cond bool, msg string, keyvals ...any) error {
	return d.cond(NoticeLevel, If, cond, msg, keyvals)
}

// NoticeUnless logs at notice severity only when cond is false.
func (d Dispatcher) NoticeUnless(cond bool, msg string, keyvals ...any) error {
	return d.cond(NoticeLevel, Unless, cond, msg, keyvals)
}

// InfoIf logs at info severity only when cond is true.
func (d Dispatcher) InfoIf(cond bool, msg string, keyvals ...any) error {
	return d.cond(InfoLevel, If, cond, msg, keyvals)
}

// InfoUnless logs at info severity only when cond is false.
func (d Dispatcher) InfoUnless(cond bool, msg string, keyvals ...any) error {
	return d.cond(InfoLevel, Unless, cond, msg, keyvals)
}

// DebugIf logs at debug severity only when cond is true.
func (d Dispatcher) DebugIf(cond bool, msg string, keyvals ...any) error {
	return d.cond(DebugLevel, If, cond, msg, keyvals)
}

// DebugUnless logs at debug severity only when cond is false.
func (d Dispatcher) DebugUnless(cond bool, msg string, keyvals ...any) error {
	return d.cond(DebugLevel, Unless, cond, msg, keyvals)
}

// EmergencyAndThrow logs msg at emergency severity and returns the error built
// by factory (NewLoggedError when nil). The result is never nil.
func (d Dispatcher) EmergencyAndThrow(factory ErrorFactory, msg string, ctx Context, cause error, code int) error {
	return d.throw(EmergencyLevel, factory, msg, ctx, cause, code)
}

// AlertAndThrow logs msg at alert severity and returns the error built
// by factory (NewLoggedError when nil). The result is never nil.
func (d Dispatcher) AlertAndThrow(factory ErrorFactory, msg string, ctx Context, cause error, code int) error {
	return d.throw(AlertLevel, factory, msg, ctx, cause, code)
}

// CriticalAndThrow logs msg at critical severity and returns the error built
// by factory (NewLoggedError when nil). The result is never nil.
func (d Dispatcher) CriticalAndThrow(factory ErrorFactory, msg string, ctx Context, cause error, code int) error {
	return d.throw(CriticalLevel, factory, msg, ctx, cause, code)
}

// ErrorAndThrow logs msg at error severity and returns the error built
// by factory (NewLoggedError when nil). The result is never nil.
func (d Dispatcher) ErrorAndThrow(factory ErrorFactory, msg string, ctx Context, cause error, code int) error {
	return d.throw(ErrorLevel, factory, msg, ctx, cause, code)
}

// LogException logs err at severity s. The message is "<type>: <error>"
// and the context describes err and its wrapped chain under "exception",
// "message", "code" and "previous", on top of keyvals.
func (d Dispatcher) LogException(err error, s Severity, keyvals ...any) error {
	if err == nil {
		return nil
	}
	keyvals = append(keyvals[:len(keyvals):len(keyvals)], contextPairs(errorContext(err))...)
	return d.std(s, fmt.Sprintf("%T: %s", err, err), keyvals)
}

func contextPairs(ctx Context) []any {
	out := make([]any, 0, len(ctx)*2)
	for _, f := range ctx {
		out = append(out, f.Key, f.Value)
	}
	return out
}

// DebugContext returns extra with a "_debug" entry prepended that records
// memory statistics, the current time and the calling function.
// Keys starting with an underscore are never interpolated into messages.
func (d Dispatcher) DebugContext(extra Context) Context {
	caller := d.target().Resolver().Resolve(0)
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	dbg := Context{
		{Key: "memory", Value: mem.HeapAlloc},
		{Key: "memory_sys", Value: mem.Sys},
		{Key: "goroutines", Value: runtime.NumGoroutine()},
		{Key: "timestamp", Value: float64(time.Now().UnixMicro()) / 1e6},
		{Key: "file", Value: caller.File},
		{Key: "line", Value: caller.Line},
		{Key: "function", Value: caller.Function},
		{Key: "type", Value: nilIfEmpty(caller.Type)},
	}
	return Context{{Key: "_debug", Value: dbg}}.Merge(extra)
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// LogAndReturn logs msg at severity s through d and returns value
// unchanged, so a log call can sit inside an expression.
func LogAndReturn[T any](d Dispatcher, s Severity, value T, msg string, keyvals ...any) (T, error) {
	if err := checkSeverity(s); err != nil {
		return value, err
	}
	return value, d.target().LogContext(s, msg, KV(keyvals...))
}

// LogWithTimer runs op and logs "<description> completed in N ms" at s,
// or "<description> failed after N ms: <error>" at ErrorLevel. op's result
// and error are returned unchanged.
func LogWithTimer[T any](d Dispatcher, s Severity, description string, op func() (T, error)) (T, error) {
	if err := checkSeverity(s); err != nil {
		var zero T
		return zero, err
	}
	return runTimed(d.target(), s, description, op)
}
