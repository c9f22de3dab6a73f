package logger

import (
	"fmt"
	"strings"
)

// Severity is a syslog log level. Lower values are more severe.
type Severity int

const (
	EmergencyLevel Severity = iota // system is unusable
	AlertLevel                     // action must be taken immediately
	CriticalLevel                  // critical conditions
	ErrorLevel                     // error conditions
	WarningLevel                   // warning conditions
	NoticeLevel                    // normal but significant condition
	InfoLevel                      // informational messages
	DebugLevel                     // debug-level messages, the most verbose tier
)

var severityNames = [...]string{
	EmergencyLevel: "emergency",
	AlertLevel:     "alert",
	CriticalLevel:  "critical",
	ErrorLevel:     "error",
	WarningLevel:   "warning",
	NoticeLevel:    "notice",
	InfoLevel:      "info",
	DebugLevel:     "debug",
}

var severityTitles = [...]string{
	EmergencyLevel: "Emergency",
	AlertLevel:     "Alert",
	CriticalLevel:  "Critical",
	ErrorLevel:     "Error",
	WarningLevel:   "Warning",
	NoticeLevel:    "Notice",
	InfoLevel:      "Info",
	DebugLevel:     "Debug",
}

// AllSeverities returns every severity, most severe first.
func AllSeverities() []Severity {
	return []Severity{
		EmergencyLevel,
		AlertLevel,
		CriticalLevel,
		ErrorLevel,
		WarningLevel,
		NoticeLevel,
		InfoLevel,
		DebugLevel,
	}
}

// Valid reports whether s is one of the eight known severities.
func (s Severity) Valid() bool {
	return s >= EmergencyLevel && s <= DebugLevel
}

// String returns the lowercase syslog name ("error", "debug", ...).
func (s Severity) String() string {
	if !s.Valid() {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

// Title returns the capitalised name used in method names ("Error", "Debug", ...).
func (s Severity) Title() string {
	if !s.Valid() {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityTitles[s]
}

// Rank returns the numeric rank, 0 (emergency) through 7 (debug).
func (s Severity) Rank() int {
	return int(s)
}

// SyslogPriority returns the RFC 5424 severity code, which matches the rank.
func (s Severity) SyslogPriority() int {
	return int(s)
}

// ParseSeverity parses a severity name. Matching is case-insensitive and
// accepts the syslog short forms emerg, crit, err and warn.
// Unknown names fail with ErrInvalidSeverity.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "emergency", "emerg":
		return EmergencyLevel, nil
	case "alert":
		return AlertLevel, nil
	case "critical", "crit":
		return CriticalLevel, nil
	case "error", "err":
		return ErrorLevel, nil
	case "warning", "warn":
		return WarningLevel, nil
	case "notice":
		return NoticeLevel, nil
	case "info":
		return InfoLevel, nil
	case "debug":
		return DebugLevel, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSeverity, name)
}

// MustParseSeverity is like ParseSeverity but panics on unknown names.
// Use it for compile-time constants only.
func MustParseSeverity(name string) Severity {
	s, err := ParseSeverity(name)
	if err != nil {
		panic(err)
	}
	return s
}

// severityFromTitle maps a capitalised method-name segment to a severity.
func severityFromTitle(title string) (Severity, bool) {
	for i, t := range severityTitles {
		if t == title {
			return Severity(i), true
		}
	}
	return 0, false
}

func checkSeverity(s Severity) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSeverity, int(s))
	}
	return nil
}
