package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySetGetHas(t *testing.T) {
	var r Registry
	assert.False(t, r.Has())
	assert.Nil(t, r.Get())

	l, _ := newTestLogger()
	r.Set(l)
	assert.True(t, r.Has())
	assert.Same(t, l, r.Get())

	other, _ := newTestLogger()
	r.Set(other)
	assert.Same(t, other, r.Get(), "set replaces the previous logger")
}

func TestRegistryResetFlushes(t *testing.T) {
	var r Registry
	l, rec := newTestLogger()
	r.Set(l)

	require.NoError(t, l.Log(InfoLevel, "repeat"))
	require.NoError(t, l.Log(InfoLevel, "repeat"))
	assert.Empty(t, rec.Lines())

	require.NoError(t, r.Reset())
	assert.False(t, r.Has())
	assert.Equal(t, []string{"repeat (x2)"}, rec.messages())

	require.NoError(t, r.Reset(), "resetting an empty registry is a no-op")
}

func TestSharedLoggerRouting(t *testing.T) {
	l, rec := newTestLogger(WithDeduplication(false))
	SetShared(l)
	t.Cleanup(func() { _ = ResetShared() })

	require.True(t, HasShared())
	assert.Same(t, l, Shared())

	require.NoError(t, Info("started", "port", 8080))
	require.NoError(t, WarningIf(true, "slow"))
	require.NoError(t, DebugUnless(true, "skipped"))
	_, err := Call("logNotice", "dynamic")
	require.NoError(t, err)
	err = ErrorAndThrow(nil, "thrown", nil, nil, 0)
	assert.EqualError(t, err, "thrown")

	assert.Equal(t, []string{`started {"port":8080}`, "slow", "dynamic", "thrown"}, rec.messages())
	assert.Contains(t, rec.Lines()[0], "info [logger.TestSharedLoggerRouting in ")
}

func TestInstanceDispatcherIgnoresShared(t *testing.T) {
	sharedLogger, sharedRec := newTestLogger(WithDeduplication(false))
	SetShared(sharedLogger)
	t.Cleanup(func() { _ = ResetShared() })

	own, ownRec := newTestLogger(WithDeduplication(false))
	require.NoError(t, own.Dispatcher().Notice("mine"))

	assert.Equal(t, []string{"mine"}, ownRec.messages())
	assert.Empty(t, sharedRec.Lines())
}
