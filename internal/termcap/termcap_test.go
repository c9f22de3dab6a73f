package termcap

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withEnv(t *testing.T, env map[string]string) {
	t.Helper()
	old := Getenv
	Getenv = func(k string) string { return env[k] }
	t.Cleanup(func() { Getenv = old })
}

func TestSupportsColor(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{name: "buffer is not a terminal", env: nil, want: false},
		{name: "force color", env: map[string]string{"FORCE_COLOR": "1"}, want: true},
		{name: "force color zero", env: map[string]string{"FORCE_COLOR": "0"}, want: false},
		{name: "no color wins", env: map[string]string{"NO_COLOR": "1", "FORCE_COLOR": "1"}, want: false},
		{name: "dumb terminal", env: map[string]string{"TERM": "dumb"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withEnv(t, tt.env)
			assert.Equal(t, tt.want, SupportsColor(&bytes.Buffer{}))
		})
	}
}

func TestWriterIsTerminal_NoFd(t *testing.T) {
	assert.False(t, WriterIsTerminal(&bytes.Buffer{}))
}

func TestUnderJournald(t *testing.T) {
	withEnv(t, map[string]string{"JOURNAL_STREAM": "8:1234"})
	assert.True(t, UnderJournald())

	withEnv(t, nil)
	assert.False(t, UnderJournald())
}
