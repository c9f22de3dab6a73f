package logger

import (
	"strings"
	"time"
)

// TimestampLayout is the layout of the leading timestamp of every entry.
const TimestampLayout = "2006-01-02 15:04:05"

// Record is one log entry before formatting.
type Record struct {
	Severity Severity
	Message  string
	Context  Context
	Time     time.Time
	Caller   CallerFrame

	// verbose is fixed when the record is built, so a record held back by
	// deduplication keeps its format across SetMinSeverity.
	verbose bool
}

// FormatEntry renders r as
//
//	[2006-01-02 15:04:05] severity [Type::Function()]: message {"ctx":"json"}
//
// The caller location (" in file:line") is only included when verbose is
// set, which the Logger does when its minimum severity is DebugLevel.
// FormatEntry is pure: identical inputs give identical output.
func FormatEntry(r Record, verbose bool) string {
	var b strings.Builder
	b.Grow(64 + len(r.Message))
	b.WriteByte('[')
	b.WriteString(r.Time.Format(TimestampLayout))
	b.WriteString("] ")
	b.WriteString(r.Severity.String())
	b.WriteString(" [")
	b.WriteString(r.Caller.Descriptor(verbose))
	b.WriteString("]: ")
	b.WriteString(r.Message)
	if ctx := r.Context.String(); ctx != "" {
		b.WriteByte(' ')
		b.WriteString(ctx)
	}
	return b.String()
}
