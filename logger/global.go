package logger

// Package-level entry points log through the shared Logger (see SetShared),
// or through stderr when none is set.

// Dispatch runs variant v at severity s on the shared Logger.
func Dispatch(s Severity, v Variant, args Args) (any, error) {
	return Dispatcher{}.Dispatch(s, v, args)
}

// Call dispatches a log<Severity>[Suffix] method name on the shared Logger.
func Call(name string, args ...any) (any, error) {
	return Dispatcher{}.Call(name, args...)
}

// Log records msg at severity s on the shared Logger.
func Log(s Severity, msg string, keyvals ...any) error {
	return Dispatcher{}.std(s, msg, keyvals)
}

// Emergency logs msg at emergency severity on the shared Logger.
func Emergency(msg string, keyvals ...any) error {
	return Dispatcher{}.std(EmergencyLevel, msg, keyvals)
}

// Alert logs msg at alert severity on the shared Logger.
func Alert(msg string, keyvals ...any) error {
	return Dispatcher{}.std(AlertLevel, msg, keyvals)
}

// Critical logs msg at critical severity on the shared Logger.
func Critical(msg string, keyvals ...any) error {
	return Dispatcher{}.std(CriticalLevel, msg, keyvals)
}

// Error logs msg at error severity on the shared Logger.
func Error(msg string, keyvals ...any) error {
	return Dispatcher{}.std(ErrorLevel, msg, keyvals)
}

// Warning logs msg at warning severity on the shared Logger.
func Warning(msg string, keyvals ...any) error {
	return Dispatcher{}.std(WarningLevel, msg, keyvals)
}

// Notice logs msg at notice severity on the shared Logger.
func Notice(msg string, keyvals ...any) error {
	return Dispatcher{}.std(NoticeLevel, msg, keyvals)
}

// Info logs msg at info severity on the shared Logger.
func Info(msg string, keyvals ...any) error {
	return Dispatcher{}.std(InfoLevel, msg, keyvals)
}

// Debug logs msg at debug severity on the shared Logger.
func Debug(msg string, keyvals ...any) error {
	return Dispatcher{}.std(DebugLevel, msg, keyvals)
}

// EmergencyIf is Dispatcher.EmergencyIf on the shared Logger.
func EmergencyIf(cond bool, msg string, keyvals ...any) error {
	return Dispatcher{}.cond(EmergencyLevel, If, cond, msg, keyvals)
}

// EmergencyUnless is Dispatcher.EmergencyUnless on the shared Logger.
func EmergencyUnless(cond bool, msg string, keyvals ...any) error {
	return Dispatcher{}.cond(EmergencyLevel, Unless, cond, msg, keyvals)
}

// AlertIf is Dispatcher.AlertIf on the shared Logger.
func AlertIf(cond bool, msg string, keyvals ...any) error {
	return Dispatcher{}.cond(AlertLevel, If, cond, msg, keyvals)
}

// AlertUnless is Dispatcher.AlertUnless on the shared Logger.
func AlertUnless(cond bool, msg string, keyvals ...any) error {
	return Dispatcher{}.cond(AlertLevel, Unless, cond, msg, keyvals)
}

// CriticalIf is Dispatcher.CriticalIf on the shared Logger.
func CriticalIf(cond bool, msg string, keyvals ...any) error {
	return Dispatcher{}.cond(CriticalLevel, If, cond, msg, keyvals)
}

// CriticalUnless is Dispatcher.CriticalUnless on the shared Logger.
func CriticalUnless(cond bool, msg string, keyvals ...any) error {
	return Dispatcher{}.cond(CriticalLevel, Unless, cond, msg, keyvals)
}

// ErrorIf is Dispatcher.ErrorIf on the shared Logger.
func ErrorIf(cond bool, msg string, keyvals ...any) error {
	return Dispatcher{}.cond(ErrorLevel, If, cond, msg, keyvals)
}

// ErrorUnless is Dispatcher.ErrorUnless on the shared Logger.
func ErrorUnless(cond bool, msg string, keyvals ...any) error {
	return Dispatcher{}.cond(ErrorLevel, Unless, cond, msg, keyvals)
}

// WarningIf is Dispatcher.WarningIf on the shared Logger.
func WarningIf(cond bool, msg string, keyvals ...any) error {
	return Dispatcher{}.cond(WarningLevel, If, cond, msg, keyvals)
}

// WarningUnless is Dispatcher.WarningUnless on the shared Logger.
func WarningUnless(cond bool, msg string, keyvals ...any) error {
	return Dispatcher{}.cond(WarningLevel, Unless, cond, msg, keyvals)
}

// NoticeIf is Dispatcher.NoticeIf on the shared Logger.
func NoticeIf(cond bool, msg string, keyvals ...any) error {
	return Dispatcher{}.cond(NoticeLevel, If, cond, msg, keyvals)
}

// NoticeUnless is Dispatcher.NoticeUnless on the shared Logger.
func NoticeUnless(cond bool, msg string, keyvals ...any) error {
	return Dispatcher{}.cond(NoticeLevel, Unless, cond, msg, keyvals)
}

// InfoIf is Dispatcher.InfoIf on the shared Logger.
func InfoIf(cond bool, msg string, keyvals ...any) error {
	return Dispatcher{}.cond(InfoLevel, If, cond, msg, keyvals)
}

// InfoUnless is Dispatcher.InfoUnless on the shared Logger.
func InfoUnless(cond bool, msg string, keyvals ...any) error {
	return Dispatcher{}.cond(InfoLevel, Unless, cond, msg, keyvals)
}

// DebugIf is Dispatcher.DebugIf on the shared Logger.
func DebugIf(cond bool, msg string, keyvals ...any) error {
	return Dispatcher{}.cond(DebugLevel, If, cond, msg, keyvals)
}

// DebugUnless is Dispatcher.DebugUnless on the shared Logger.
func DebugUnless(cond bool, msg string, keyvals ...any) error {
	return Dispatcher{}.cond(DebugLevel, Unless, cond, msg, keyvals)
}

// EmergencyAndThrow is Dispatcher.EmergencyAndThrow on the shared Logger.
func EmergencyAndThrow(factory ErrorFactory, msg string, ctx Context, cause error, code int) error {
	return Dispatcher{}.throw(EmergencyLevel, factory, msg, ctx, cause, code)
}

// AlertAndThrow is Dispatcher.AlertAndThrow on the shared Logger.
func AlertAndThrow(factory ErrorFactory, msg string, ctx Context, cause error, code int) error {
	return Dispatcher{}.throw(AlertLevel, factory, msg, ctx, cause, code)
}

// CriticalAndThrow is Dispatcher.CriticalAndThrow on the shared Logger.
func CriticalAndThrow(factory ErrorFactory, msg string, ctx Context, cause error, code int) error {
	return Dispatcher{}.throw(CriticalLevel, factory, msg, ctx, cause, code)
}

// ErrorAndThrow is Dispatcher.ErrorAndThrow on the shared Logger.
func ErrorAndThrow(factory ErrorFactory, msg string, ctx Context, cause error, code int) error {
	return Dispatcher{}.throw(ErrorLevel, factory, msg, ctx, cause, code)
}

// LogException is Dispatcher.LogException on the shared Logger.
func LogException(err error, s Severity, keyvals ...any) error {
	return Dispatcher{}.LogException(err, s, keyvals...)
}

// DebugContext is Dispatcher.DebugContext on the shared Logger.
func DebugContext(extra Context) Context {
	return Dispatcher{}.DebugContext(extra)
}
