package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mordilloSan/go-logcore/config"
	"github.com/mordilloSan/go-logcore/logger"
)

type inventory struct {
	logger.Dispatcher
	items map[string]int
}

func (inv *inventory) Reserve(sku string, qty int) error {
	have := inv.items[sku]
	_ = inv.DebugIf(qty > 10, "large reservation", "sku", sku, "qty", qty)
	if have < qty {
		return inv.ErrorAndThrow(nil, "insufficient stock", logger.KV("sku", sku, "have", have), nil, 409)
	}
	inv.items[sku] = have - qty
	return inv.Info("reserved", "sku", sku, "qty", qty)
}

// Example demonstrating go-logcore usage.
//
// Usage: ./go-logcore [config.yaml]
// Every setting can also be given as LOGGER_* environment variables,
// e.g. LOGGER_SINK=both LOGGER_FILE__PATH=./app.log.
func main() {
	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	l, observer, err := config.Build(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.SetShared(l)
	defer func() {
		if err := l.Close(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()

	_ = logger.Notice("starting", "sink", cfg.Sink, "min_severity", cfg.MinSeverity)

	// Repeats are collapsed into one line with a count.
	for range 3 {
		_ = logger.Warning("cache miss", "key", "user:123")
	}

	inv := &inventory{items: map[string]int{"apple": 5}}
	_ = inv.Reserve("apple", 2)
	if err := inv.Reserve("apple", 20); err != nil {
		_ = logger.LogException(err, logger.ErrorLevel)
	}

	port, _ := logger.LogAndReturn(logger.Dispatcher{}, logger.InfoLevel, 8080, "port chosen")
	_ = logger.InfoUnless(port == 8080, "non-default port")

	_, _ = logger.LogWithTimer(logger.Dispatcher{}, logger.InfoLevel, "warm up",
		func() (struct{}, error) {
			time.Sleep(15 * time.Millisecond)
			return struct{}{}, nil
		})
	_, _ = logger.LogWithTimer(logger.Dispatcher{}, logger.InfoLevel, "connect",
		func() (int, error) { return 0, errors.New("connection refused") })

	// Method names can be dispatched dynamically.
	if _, err := logger.Call("logCriticalIf", true, "disk almost full", map[string]any{"mount": "/var"}); err != nil {
		_ = logger.Error(err.Error())
	}
	if _, err := logger.Call("logVerbose", "nope"); err != nil {
		_ = logger.Error(err.Error())
	}

	_ = logger.Debug("state", "debug", logger.DebugContext(nil))

	if observer != nil && cfg.Metrics.PushURL != "" {
		if err := observer.Push(context.Background(), cfg.Metrics.PushURL, cfg.Metrics.PushJob, 5*time.Second); err != nil {
			_ = logger.Error("metrics push failed", "err", err)
		}
	}
}
