package logger

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
)

// ScriptFunction is the function name reported when no external caller
// exists on the stack.
const ScriptFunction = "{script}"

// CallerFrame identifies the code that asked for a log line.
type CallerFrame struct {
	File     string
	Line     int
	Function string
	// Type is the enclosing type ("pkg.Server"); empty for plain functions.
	Type string
}

// Descriptor renders "Type::Function()" or "Function". When verbose is set
// the location is appended as " in file:line".
func (f CallerFrame) Descriptor(verbose bool) string {
	var s string
	if f.Type != "" {
		s = f.Type + "::" + f.Function + "()"
	} else {
		s = f.Function
	}
	if verbose && f.File != "" {
		s += fmt.Sprintf(" in %s:%d", f.File, f.Line)
	}
	return s
}

// StackFrame is one platform-neutral stack entry. File and Line point at the
// position currently executing inside Function.
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// StackSource returns the active call stack, innermost first, with skip
// frames dropped from the top.
type StackSource func(skip int) []StackFrame

const maxStackDepth = 64

// RuntimeStack is the StackSource backed by runtime.Callers.
func RuntimeStack(skip int) []StackFrame {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pcs[:n])
	out := make([]StackFrame, 0, n)
	for {
		fr, more := frames.Next()
		out = append(out, StackFrame{Function: fr.Function, File: fr.File, Line: fr.Line})
		if !more {
			break
		}
	}
	return out
}

// pkgPath is the import path of this package, taken from a function symbol
// so that it survives module renames and vendoring.
var pkgPath = func() string {
	pc, _, _, _ := runtime.Caller(0)
	name := runtime.FuncForPC(pc).Name()
	slash := strings.LastIndex(name, "/")
	dot := strings.Index(name[slash+1:], ".")
	return name[:slash+1+dot]
}()

// internalSymbols lists the functions of this package that sit between a
// caller and the sink. Entries are relative to pkgPath; an entry ending in
// ".*" covers every method of that receiver.
var internalSymbols = []string{
	"(*Logger).*",
	"(*deduplicator).*",
	"(*CallerResolver).*",
	"(*Registry).*",
	"Dispatcher.*",
	"(*Dispatcher).*",
	"Dispatch",
	"Call",
	"Log",
	"LogAndReturn",
	"LogWithTimer",
	"LogException",
	"DebugContext",
	"Emergency", "Alert", "Critical", "Error", "Warning", "Notice", "Info", "Debug",
	"EmergencyIf", "AlertIf", "CriticalIf", "ErrorIf", "WarningIf", "NoticeIf", "InfoIf", "DebugIf",
	"EmergencyUnless", "AlertUnless", "CriticalUnless", "ErrorUnless",
	"WarningUnless", "NoticeUnless", "InfoUnless", "DebugUnless",
	"ErrorAndThrow", "CriticalAndThrow", "AlertAndThrow", "EmergencyAndThrow",
	"runTimed",
	"logAndThrow",
}

// CallerResolver finds the first stack frame outside the logging machinery.
type CallerResolver struct {
	mu        sync.RWMutex
	stack     StackSource
	exact     map[string]struct{}
	receivers map[string]struct{}
}

// NewCallerResolver returns a resolver reading frames from stack.
// A nil stack uses RuntimeStack.
func NewCallerResolver(stack StackSource) *CallerResolver {
	if stack == nil {
		stack = RuntimeStack
	}
	r := &CallerResolver{
		stack:     stack,
		exact:     make(map[string]struct{}),
		receivers: make(map[string]struct{}),
	}
	for _, sym := range internalSymbols {
		if recv, ok := strings.CutSuffix(sym, ".*"); ok {
			r.receivers[pkgPath+"."+recv] = struct{}{}
			continue
		}
		r.exact[pkgPath+"."+sym] = struct{}{}
	}
	return r
}

// AddInternal marks fully-qualified function names (as reported by
// runtime.Frame.Function) as internal. Wrapper packages use this to hide
// their own helpers from caller attribution.
func (r *CallerResolver) AddInternal(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range names {
		r.exact[n] = struct{}{}
	}
}

// IsInternal reports whether function belongs to the logging machinery.
func (r *CallerResolver) IsInternal(function string) bool {
	base := baseSymbol(function)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.exact[base]; ok {
		return true
	}
	if recv, _, ok := splitMethod(base); ok {
		_, hit := r.receivers[recv]
		return hit
	}
	return false
}

// Resolve walks the stack outward and returns the first external frame,
// then skips additionalSkip further frames. Runtime frames such as the panic
// machinery are stepped over. When the walk reaches the goroutine's root it
// returns the {script} sentinel.
func (r *CallerResolver) Resolve(additionalSkip int) CallerFrame {
	frames := r.stack(1)
	for i, fr := range frames {
		if isStackRoot(fr.Function) {
			break
		}
		if isRuntimeFrame(fr.Function) || r.IsInternal(fr.Function) {
			continue
		}
		j := i + additionalSkip
		if j >= len(frames) || isStackRoot(frames[j].Function) {
			break
		}
		return frameIdentity(frames[j])
	}
	return CallerFrame{Function: ScriptFunction}
}

func isRuntimeFrame(function string) bool {
	return strings.HasPrefix(function, "runtime.")
}

func isStackRoot(function string) bool {
	switch function {
	case "", "runtime.main", "runtime.goexit":
		return true
	}
	return false
}

// baseSymbol strips generic instantiation brackets and closure suffixes
// (".func1", ".gowrap2", "-fm") so closures count as their parent.
func baseSymbol(function string) string {
	if i := strings.Index(function, "[...]"); i >= 0 {
		function = function[:i] + function[i+len("[...]"):]
	}
	function = strings.TrimSuffix(function, "-fm")
	for {
		dot := strings.LastIndex(function, ".")
		if dot < 0 || !isClosureSuffix(function[dot+1:]) {
			return function
		}
		function = function[:dot]
	}
}

func isClosureSuffix(s string) bool {
	for _, prefix := range []string{"func", "gowrap", "deferwrap"} {
		rest, ok := strings.CutPrefix(s, prefix)
		if ok && rest != "" && strings.Trim(rest, "0123456789") == "" {
			return true
		}
	}
	return s != "" && strings.Trim(s, "0123456789") == ""
}

// splitMethod splits "path/pkg.(*T).M" or "path/pkg.T.M" into the receiver
// part ("path/pkg.(*T)") and the method name.
func splitMethod(function string) (recv, method string, ok bool) {
	slash := strings.LastIndex(function, "/")
	rest := function[slash+1:]
	dot := strings.Index(rest, ".")
	if dot < 0 {
		return "", "", false
	}
	prefix := function[:slash+1+dot+1]
	sym := rest[dot+1:]
	if strings.HasPrefix(sym, "(") {
		end := strings.Index(sym, ")")
		if end < 0 || end+2 > len(sym) {
			return "", "", false
		}
		return prefix + sym[:end+1], sym[end+2:], true
	}
	if i := strings.Index(sym, "."); i > 0 {
		return prefix + sym[:i], sym[i+1:], true
	}
	return "", "", false
}

// frameIdentity converts a raw frame into a CallerFrame, splitting the
// enclosing type off method symbols.
func frameIdentity(fr StackFrame) CallerFrame {
	out := CallerFrame{File: fr.File, Line: fr.Line}
	name := fr.Function
	short := name[strings.LastIndex(name, "/")+1:]
	dot := strings.Index(short, ".")
	if dot < 0 {
		out.Function = short
		return out
	}
	pkg, sym := short[:dot], short[dot+1:]
	if strings.HasPrefix(sym, "(") {
		if end := strings.Index(sym, ")"); end > 0 && end+2 <= len(sym) {
			out.Type = pkg + "." + strings.TrimPrefix(sym[1:end], "*")
			out.Function = sym[end+2:]
			return out
		}
	}
	if head, tail, ok := strings.Cut(sym, "."); ok {
		next, _, _ := strings.Cut(tail, ".")
		if !isClosureSuffix(next) {
			out.Type = pkg + "." + head
			out.Function = tail
			return out
		}
	}
	out.Function = short
	return out
}
