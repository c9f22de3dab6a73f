// Package termcap probes what the attached output stream can render.
package termcap

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Getenv is the environment lookup used by the probes.
var Getenv = os.Getenv

type fder interface {
	Fd() uintptr
}

// IsTerminal reports whether fd is an interactive terminal, including the
// Cygwin and MSYS pseudo terminals used by Git Bash on Windows.
func IsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd)) || isatty.IsCygwinTerminal(fd)
}

// WriterIsTerminal reports whether w is backed by a terminal. Writers
// without a file descriptor never are.
func WriterIsTerminal(w io.Writer) bool {
	f, ok := w.(fder)
	return ok && IsTerminal(f.Fd())
}

// SupportsColor decides whether ANSI colours should be written to w.
// NO_COLOR disables colour and FORCE_COLOR enables it regardless of the
// stream; TERM=dumb disables it; otherwise w must be a terminal.
func SupportsColor(w io.Writer) bool {
	if Getenv("NO_COLOR") != "" {
		return false
	}
	if v := Getenv("FORCE_COLOR"); v != "" && v != "0" {
		return true
	}
	if Getenv("TERM") == "dumb" {
		return false
	}
	return WriterIsTerminal(w)
}

// UnderJournald reports whether output is captured by systemd-journald,
// which accepts a "<N>" priority prefix on each line.
func UnderJournald() bool {
	return Getenv("JOURNAL_STREAM") != ""
}
