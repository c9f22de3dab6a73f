package logger_test

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mordilloSan/go-logcore/logger"
)

func exampleClock() time.Time {
	return time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
}

func newExampleLogger() *logger.Logger {
	return logger.New(logger.NewWriterSink(os.Stdout),
		logger.WithMinSeverity(logger.InfoLevel),
		logger.WithClock(exampleClock))
}

// This example shows severity filtering and the collapsing of repeats.
func ExampleNew() {
	l := newExampleLogger()
	defer l.Close()

	_ = l.Log(logger.InfoLevel, "server started", "port", 8080)
	_ = l.Log(logger.DebugLevel, "below the floor")
	for range 3 {
		_ = l.Log(logger.WarningLevel, "slow request", "path", "/api")
	}
	_ = l.Flush()
	// Output:
	// [2024-03-09 14:05:06] info [logger_test.ExampleNew]: server started {"port":8080}
	// [2024-03-09 14:05:06] warning [logger_test.ExampleNew]: slow request (x3) {"path":"/api"}
}

type Server struct {
	logger.Dispatcher
}

func (s *Server) Serve() {
	_ = s.Notice("listening", "addr", ":8080")
	_ = s.InfoUnless(true, "never written")
}

// This example embeds a Dispatcher so a type gets logging methods and its
// entries are attributed to the calling method.
func ExampleDispatcher() {
	l := newExampleLogger()
	defer l.Close()

	s := &Server{Dispatcher: l.Dispatcher()}
	s.Serve()
	_ = l.Flush()
	// Output:
	// [2024-03-09 14:05:06] notice [logger_test.Server::Serve()]: listening {"addr":":8080"}
}

// This example logs an error and returns it in one step.
func ExampleDispatcher_ErrorAndThrow() {
	l := newExampleLogger()
	defer l.Close()

	cause := errors.New("limit 100 reached")
	err := l.Dispatcher().ErrorAndThrow(nil, "quota exceeded", logger.KV("user", 7), cause, 429)
	_ = l.Flush()
	fmt.Println(err)
	// Output:
	// [2024-03-09 14:05:06] error [logger_test.ExampleDispatcher_ErrorAndThrow]: quota exceeded {"user":7}
	// quota exceeded: limit 100 reached
}

// This example routes package-level calls through the shared logger.
func ExampleSetShared() {
	logger.SetShared(newExampleLogger())

	_ = logger.Info("using the shared logger")
	_ = logger.WarningIf(2 > 1, "condition held")
	_ = logger.ResetShared()
	// Output:
	// [2024-03-09 14:05:06] info [logger_test.ExampleSetShared]: using the shared logger
	// [2024-03-09 14:05:06] warning [logger_test.ExampleSetShared]: condition held
}

// This example resolves a dynamic method name.
func ExampleParseMethod() {
	for _, name := range []string{"logWarningUnless", "logDebug", "logFoo"} {
		s, v, err := logger.ParseMethod(name)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf("%s %q\n", s, v)
	}
	// Output:
	// warning "Unless"
	// debug ""
	// unknown log method: "logFoo"
}

// This example times an operation; the line reports its duration.
func ExampleLogWithTimer() {
	l := newExampleLogger()
	defer l.Close()

	users, err := logger.LogWithTimer(l.Dispatcher(), logger.InfoLevel, "load users",
		func() ([]string, error) { return []string{"ana", "bo"}, nil })
	fmt.Println(users, err)
}
