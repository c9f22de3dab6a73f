package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Variant is the control-flow mode of a dispatched log call.
type Variant int

const (
	// Standard logs unconditionally.
	Standard Variant = iota
	// If logs only when Args.Condition is true.
	If
	// Unless logs only when Args.Condition is false.
	Unless
	// AndReturn logs and hands Args.Value back unchanged.
	AndReturn
	// WithTimer runs Args.Operation and logs how long it took.
	WithTimer
	// AndThrow logs and then always returns an error built by Args.Factory.
	AndThrow
)

var variantSuffixes = [...]string{
	Standard:  "",
	If:        "If",
	Unless:    "Unless",
	AndReturn: "AndReturn",
	WithTimer: "WithTimer",
	AndThrow:  "AndThrow",
}

// String returns the method-name suffix of v; Standard has none.
func (v Variant) String() string {
	if v < Standard || v > AndThrow {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantSuffixes[v]
}

// Suffixes in match order; "If" goes last.
var parseOrder = []Variant{Unless, AndReturn, WithTimer, AndThrow, If}

// Args carries the arguments of every variant. Fields a variant does not
// use are ignored.
type Args struct {
	Message string
	Context Context

	// Condition gates If and Unless.
	Condition bool
	// Value is returned by AndReturn.
	Value any

	// Operation and Description drive WithTimer.
	Operation   func() (any, error)
	Description string

	// Factory, Cause and Code drive AndThrow. A nil Factory uses
	// NewLoggedError.
	Factory ErrorFactory
	Cause   error
	Code    int
}

// Dispatcher routes log calls by (severity, variant). It is meant to be
// embedded or held as a field by any type that wants logging methods.
// With Logger unset it logs through the shared Logger of the default
// Registry, or through a stderr fallback when none is set.
type Dispatcher struct {
	Logger *Logger
}

// Dispatcher returns a Dispatcher bound to l.
func (l *Logger) Dispatcher() Dispatcher {
	return Dispatcher{Logger: l}
}

// Dispatch runs variant v at severity s against l.
func (l *Logger) Dispatch(s Severity, v Variant, args Args) (any, error) {
	return Dispatcher{Logger: l}.Dispatch(s, v, args)
}

func (d Dispatcher) target() *Logger {
	if d.Logger != nil {
		return d.Logger
	}
	if l := shared.Get(); l != nil {
		return l
	}
	return fallback()
}

// Dispatch executes the contract of variant v at severity s.
//
// The returned value is Args.Value for AndReturn and the operation's result
// for WithTimer; it is nil otherwise. A failed operation under WithTimer is
// returned unchanged. AndThrow always returns a non-nil error.
func (d Dispatcher) Dispatch(s Severity, v Variant, args Args) (any, error) {
	if err := checkSeverity(s); err != nil {
		return nil, err
	}
	l := d.target()
	switch v {
	case Standard:
		return nil, l.LogContext(s, args.Message, args.Context)
	case If:
		if !args.Condition {
			return nil, nil
		}
		return nil, l.LogContext(s, args.Message, args.Context)
	case Unless:
		if args.Condition {
			return nil, nil
		}
		return nil, l.LogContext(s, args.Message, args.Context)
	case AndReturn:
		return args.Value, l.LogContext(s, args.Message, args.Context)
	case WithTimer:
		if args.Operation == nil {
			return nil, fmt.Errorf("%w: %s%s needs an operation", ErrBadArguments, s.Title(), v)
		}
		return runTimed(l, s, args.Description, args.Operation)
	case AndThrow:
		return nil, logAndThrow(l, s, args)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownLogMethod, v)
}

// runTimed runs op, then logs its duration at s, or at ErrorLevel when it fails.
// The operation's error is returned as is. A panic is logged and re-raised
// with the same value.
func runTimed[T any](l *Logger, s Severity, description string, op func() (T, error)) (result T, err error) {
	if description == "" {
		description = "Operation"
	}
	start := time.Now()
	completed := false
	defer func() {
		if completed {
			return
		}
		if r := recover(); r != nil {
			_ = l.LogContext(ErrorLevel,
				fmt.Sprintf("%s failed after %.2f ms: %v", description, millis(time.Since(start)), r),
				Context{{Key: "panic", Value: fmt.Sprint(r)}})
			panic(r)
		}
	}()

	result, err = op()
	completed = true
	elapsed := millis(time.Since(start))
	if err != nil {
		// The operation's error wins; a sink failure here would mask it.
		_ = l.LogContext(ErrorLevel,
			fmt.Sprintf("%s failed after %.2f ms: %s", description, elapsed, err),
			errorContext(err))
		return result, err
	}
	return result, l.LogContext(s, fmt.Sprintf("%s completed in %.2f ms", description, elapsed), nil)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// logAndThrow logs the message and returns the error the factory builds from
// it. If the log write itself failed, both errors are joined, thrown first.
func logAndThrow(l *Logger, s Severity, args Args) error {
	logErr := l.LogContext(s, args.Message, args.Context)
	factory := args.Factory
	if factory == nil {
		factory = NewLoggedError
	}
	thrown := factory(args.Message, args.Code, args.Cause)
	if thrown == nil {
		thrown = NewLoggedError(args.Message, args.Code, args.Cause)
	}
	if logErr != nil {
		return errors.Join(thrown, logErr)
	}
	return thrown
}

// errorContext describes err and its wrapped chain.
func errorContext(err error) Context {
	ctx := Context{
		{Key: "exception", Value: fmt.Sprintf("%T", err)},
		{Key: "message", Value: err.Error()},
	}
	if coded, ok := err.(interface{ ErrorCode() int }); ok {
		ctx = append(ctx, Field{Key: "code", Value: coded.ErrorCode()})
	}
	if prev := errors.Unwrap(err); prev != nil {
		ctx = append(ctx, Field{Key: "previous", Value: errorContext(prev)})
	}
	return ctx
}

// ParseMethod parses a name of the form log<Severity>[If|Unless|AndReturn|
// WithTimer|AndThrow], e.g. "logWarningUnless". Names that match no known
// combination fail with ErrUnknownLogMethod.
func ParseMethod(name string) (Severity, Variant, error) {
	rest, ok := strings.CutPrefix(name, "log")
	if ok {
		for _, v := range parseOrder {
			title, found := strings.CutSuffix(rest, v.String())
			if !found {
				continue
			}
			if s, known := severityFromTitle(title); known {
				return s, v, nil
			}
		}
		if s, known := severityFromTitle(rest); known {
			return s, Standard, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: %q", ErrUnknownLogMethod, name)
}

// Call dispatches by method name with positional arguments:
//
//	log<Sev>(message, [context])
//	log<Sev>If(condition, message, [context])
//	log<Sev>Unless(condition, message, [context])
//	log<Sev>AndReturn(value, message, [context])
//	log<Sev>WithTimer(operation, [description])
//	log<Sev>AndThrow(factory, message, [context], [cause], [code])
//
// A context is a Context, a []Field or a map[string]any (keys sorted).
// An operation is a func() (any, error), func() any, func() error or func().
// Arguments of the wrong type fail with ErrBadArguments.
func (d Dispatcher) Call(name string, args ...any) (any, error) {
	s, v, err := ParseMethod(name)
	if err != nil {
		return nil, err
	}
	a, err := bindArgs(v, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return d.Dispatch(s, v, a)
}

func bindArgs(v Variant, args []any) (Args, error) {
	var a Args
	var err error
	switch v {
	case Standard:
		if a.Message, err = stringArg(args, 0, "message"); err != nil {
			return a, err
		}
		a.Context, err = contextArg(args, 1)
	case If, Unless:
		if a.Condition, err = boolArg(args, 0); err != nil {
			return a, err
		}
		if a.Message, err = stringArg(args, 1, "message"); err != nil {
			return a, err
		}
		a.Context, err = contextArg(args, 2)
	case AndReturn:
		if len(args) > 0 {
			a.Value = args[0]
		}
		if a.Message, err = stringArg(args, 1, "message"); err != nil {
			return a, err
		}
		a.Context, err = contextArg(args, 2)
	case WithTimer:
		if a.Operation, err = operationArg(args, 0); err != nil {
			return a, err
		}
		a.Description, err = stringArg(args, 1, "description")
	case AndThrow:
		if a.Factory, err = factoryArg(args, 0); err != nil {
			return a, err
		}
		if a.Message, err = stringArg(args, 1, "message"); err != nil {
			return a, err
		}
		if a.Context, err = contextArg(args, 2); err != nil {
			return a, err
		}
		if a.Cause, err = errorArg(args, 3); err != nil {
			return a, err
		}
		a.Code, err = intArg(args, 4)
	}
	return a, err
}

func badArg(i int, want string, got any) error {
	return fmt.Errorf("%w: argument %d must be %s, got %T", ErrBadArguments, i, want, got)
}

func stringArg(args []any, i int, what string) (string, error) {
	if i >= len(args) || args[i] == nil {
		return "", nil
	}
	s, ok := args[i].(string)
	if !ok {
		return "", badArg(i, what+" string", args[i])
	}
	return s, nil
}

func boolArg(args []any, i int) (bool, error) {
	if i >= len(args) {
		return false, fmt.Errorf("%w: missing condition", ErrBadArguments)
	}
	b, ok := args[i].(bool)
	if !ok {
		return false, badArg(i, "a bool condition", args[i])
	}
	return b, nil
}

func intArg(args []any, i int) (int, error) {
	if i >= len(args) || args[i] == nil {
		return 0, nil
	}
	n, ok := args[i].(int)
	if !ok {
		return 0, badArg(i, "an int code", args[i])
	}
	return n, nil
}

func errorArg(args []any, i int) (error, error) {
	if i >= len(args) || args[i] == nil {
		return nil, nil
	}
	e, ok := args[i].(error)
	if !ok {
		return nil, badArg(i, "an error", args[i])
	}
	return e, nil
}

func contextArg(args []any, i int) (Context, error) {
	if i >= len(args) || args[i] == nil {
		return nil, nil
	}
	switch c := args[i].(type) {
	case Context:
		return c, nil
	case []Field:
		return Context(c), nil
	case map[string]any:
		keys := make([]string, 0, len(c))
		for k := range c {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ctx := make(Context, 0, len(keys))
		for _, k := range keys {
			ctx = append(ctx, Field{Key: k, Value: c[k]})
		}
		return ctx, nil
	}
	return nil, badArg(i, "a context", args[i])
}

func operationArg(args []any, i int) (func() (any, error), error) {
	if i >= len(args) || args[i] == nil {
		return nil, fmt.Errorf("%w: missing operation", ErrBadArguments)
	}
	switch op := args[i].(type) {
	case func() (any, error):
		return op, nil
	case func() any:
		return func() (any, error) { return op(), nil }, nil
	case func() error:
		return func() (any, error) { return nil, op() }, nil
	case func():
		return func() (any, error) { op(); return nil, nil }, nil
	}
	return nil, badArg(i, "an operation", args[i])
}

func factoryArg(args []any, i int) (ErrorFactory, error) {
	if i >= len(args) || args[i] == nil {
		return nil, nil
	}
	switch f := args[i].(type) {
	case ErrorFactory:
		return f, nil
	case func(string, int, error) error:
		return f, nil
	}
	return nil, badArg(i, "an ErrorFactory", args[i])
}

// Dependency injection point for the fallback logger's output.
var outFallback io.Writer = os.Stderr

var (
	fallbackMu     sync.Mutex
	fallbackLogger *Logger
)

// fallback is used when neither an instance nor a shared logger exists.
// It writes straight through, without deduplication, so nothing waits for
// a flush that may never come.
func fallback() *Logger {
	fallbackMu.Lock()
	defer fallbackMu.Unlock()
	if fallbackLogger == nil {
		fallbackLogger = New(NewWriterSink(outFallback), WithDeduplication(false))
	}
	return fallbackLogger
}

func resetFallback() {
	fallbackMu.Lock()
	defer fallbackMu.Unlock()
	fallbackLogger = nil
}
