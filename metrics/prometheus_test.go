package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mordilloSan/go-logcore/logger"
)

func TestObserver_CountsLoggerOutcomes(t *testing.T) {
	o, err := NewObserver("")
	require.NoError(t, err)

	var lines []string
	l := logger.New(logger.SinkFunc(func(line string, _ logger.Severity) error {
		lines = append(lines, line)
		return nil
	}), logger.WithMinSeverity(logger.InfoLevel), logger.WithObserver(o))

	require.NoError(t, l.Log(logger.DebugLevel, "hidden"))
	for range 3 {
		require.NoError(t, l.Log(logger.WarningLevel, "disk almost full"))
	}
	require.NoError(t, l.Flush())

	assert.Equal(t, 1.0, testutil.ToFloat64(o.filtered.WithLabelValues("debug")))
	assert.Equal(t, 2.0, testutil.ToFloat64(o.suppressed.WithLabelValues("warning")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.written.WithLabelValues("warning")))
	require.Len(t, lines, 1)
	assert.True(t, strings.HasSuffix(lines[0], "disk almost full (x3)"))
}

func TestObserver_SinkErrors(t *testing.T) {
	o, err := NewObserver("test")
	require.NoError(t, err)
	l := logger.New(logger.SinkFunc(func(string, logger.Severity) error {
		return errors.New("broken pipe")
	}), logger.WithDeduplication(false), logger.WithObserver(o))

	require.Error(t, l.Log(logger.ErrorLevel, "x"))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.sinkErrors.WithLabelValues("error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(o.written.WithLabelValues("error")))
}

func TestObserver_Handler(t *testing.T) {
	o, err := NewObserver("")
	require.NoError(t, err)
	o.Written(logger.InfoLevel)

	rec := httptest.NewRecorder()
	o.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `logcore_entries_written_total{severity="info"} 1`)
}

func TestObserver_Push(t *testing.T) {
	var receivedMethod, receivedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedMethod = r.Method
		receivedPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	o, err := NewObserver("")
	require.NoError(t, err)
	o.Written(logger.NoticeLevel)

	require.NoError(t, o.Push(context.Background(), server.URL, "logcore-demo", 5*time.Second))
	assert.Equal(t, http.MethodPut, receivedMethod)
	assert.Equal(t, "/metrics/job/logcore-demo", receivedPath)
}

func TestObserver_PushNotConfigured(t *testing.T) {
	o, err := NewObserver("")
	require.NoError(t, err)
	assert.ErrorIs(t, o.Push(context.Background(), "", "job", 0), ErrPushNotConfigured)
}
