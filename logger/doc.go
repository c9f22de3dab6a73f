// Package logger provides a leveled logger with the eight syslog severities,
// caller attribution and collapsing of consecutive duplicate entries.
//
// # Output
//
// Every entry becomes one line:
//
//	[2024-03-09 14:05:06] warning [app.Server::Serve()]: slow request {"path":"/api"}
//
// A collapsed repeat carries its count after the message:
//
//	[2024-03-09 14:05:06] warning [app.Server::Serve()]: slow request (x3) {"path":"/api"}
//
// When the minimum severity is DebugLevel the caller also carries its
// location (" in /src/app/server.go:42"). Lines go to a Sink; package sink
// provides console, rotating file and zerolog sinks.
//
// # Features
//
//   - Eight severities from EmergencyLevel (most severe) to DebugLevel
//   - Inclusive severity floor, changeable at runtime
//   - Consecutive identical entries written once with a " (xN)" suffix
//   - Caller attribution that skips the logger's own frames
//   - Conditional, pass-through, timed and log-and-throw variants
//   - A process-wide shared Logger for call sites without one
//
// # Usage
//
// Build a Logger and share it:
//
//	l := logger.New(sink.NewConsole(sink.ConsoleConfig{}),
//	    logger.WithMinSeverity(logger.InfoLevel))
//	logger.SetShared(l)
//	defer l.Close()
//
// Log through the package-level functions or a Dispatcher field:
//
//	logger.Info("server started", "port", 8080)
//	logger.WarningIf(latency > time.Second, "slow request", "path", path)
//
//	type Server struct {
//	    logger.Dispatcher
//	}
//	s.Error("request failed", "err", err)
//
// Wrap an operation to log its duration:
//
//	rows, err := logger.LogWithTimer(logger.Dispatcher{}, logger.InfoLevel,
//	    "load users", func() ([]User, error) { return db.Users(ctx) })
//
// Log and return an error in one step:
//
//	return s.ErrorAndThrow(nil, "quota exceeded", nil, err, 429)
//
// # Deduplication
//
// A repeated entry is held back until a different entry arrives or Flush is
// called, so call Flush (or Close) before the process exits.
package logger
