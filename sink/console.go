// Package sink provides Sink implementations for logger.Logger: console,
// rotating file, zerolog forwarding and combinators.
package sink

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mattn/go-colorable"

	"github.com/mordilloSan/go-logcore/internal/termcap"
	"github.com/mordilloSan/go-logcore/logger"
)

// Dependency injection points for testing outputs.
var (
	outStdout io.Writer = colorable.NewColorableStdout()
	outStderr io.Writer = colorable.NewColorableStderr()
)

// ColorMode selects when the console writes ANSI colours.
type ColorMode int

const (
	// ColorAuto colours output when the stream supports it.
	ColorAuto ColorMode = iota
	// ColorAlways colours output unconditionally.
	ColorAlways
	// ColorNever writes plain text.
	ColorNever
)

// ParseColorMode parses "auto", "always" or "never".
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always", "true", "on":
		return ColorAlways, nil
	case "never", "false", "off":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("unknown color mode %q", s)
}

// ConsoleConfig defines options for NewConsole.
type ConsoleConfig struct {
	// Color decides whether lines are wrapped in ANSI colour codes.
	// Default: ColorAuto
	Color ColorMode
	// DisableJournalPrefix stops the "<N>" priority prefix that is otherwise
	// added to plain lines when running under systemd-journald.
	// Default: false
	DisableJournalPrefix bool
}

var severityColors = map[logger.Severity]string{
	logger.DebugLevel:     "\033[36m",
	logger.InfoLevel:      "\033[32m",
	logger.NoticeLevel:    "\033[34m",
	logger.WarningLevel:   "\033[33m",
	logger.ErrorLevel:     "\033[31m",
	logger.CriticalLevel:  "\033[91m",
	logger.AlertLevel:     "\033[95m",
	logger.EmergencyLevel: "\033[97m",
}

const colorReset = "\033[0m"

// Console writes debug, info and notice lines to stdout and everything
// more severe to stderr.
type Console struct {
	mu       sync.Mutex
	stdout   io.Writer
	stderr   io.Writer
	colorOut bool
	colorErr bool
	journal  bool
}

// NewConsole returns a console sink for the process's standard streams.
func NewConsole(cfg ConsoleConfig) *Console {
	return newConsole(outStdout, outStderr, cfg)
}

func newConsole(stdout, stderr io.Writer, cfg ConsoleConfig) *Console {
	c := &Console{stdout: stdout, stderr: stderr}
	switch cfg.Color {
	case ColorAlways:
		c.colorOut, c.colorErr = true, true
	case ColorAuto:
		c.colorOut = termcap.SupportsColor(stdout)
		c.colorErr = termcap.SupportsColor(stderr)
	}
	c.journal = !cfg.DisableJournalPrefix && termcap.UnderJournald()
	return c
}

// Write implements logger.Sink.
func (c *Console) Write(line string, severity logger.Severity) error {
	w, color := c.stdout, c.colorOut
	if severity <= logger.WarningLevel {
		w, color = c.stderr, c.colorErr
	}

	var b strings.Builder
	b.Grow(len(line) + 16)
	switch {
	case color:
		b.WriteString(severityColors[severity])
		b.WriteString(line)
		b.WriteString(colorReset)
	case c.journal:
		fmt.Fprintf(&b, "<%d>", severity.SyslogPriority())
		b.WriteString(line)
	default:
		b.WriteString(line)
	}
	b.WriteByte('\n')

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := io.WriteString(w, b.String())
	return err
}
