package logger

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

type decisionKind int

const (
	// first occurrence is now pending; nothing reaches the sink yet
	buffered decisionKind = iota
	// repeat of the pending record; nothing reaches the sink
	suppressed
	// write record immediately (deduplication off)
	emitRecord
	// write the flushed record; the new one is now pending
	emitThenBuffer
)

type decision struct {
	kind   decisionKind
	record Record
}

// deduplicator collapses immediately repeated (severity, message, context)
// triples. It holds at most one pending record. It is not safe for
// concurrent use; the owning Logger serialises access.
type deduplicator struct {
	enabled     bool
	hasPending  bool
	pendingKey  uint64
	pending     Record
	repeatCount int
}

func dedupKey(sev Severity, msg string, ctx Context) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(sev.String())
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(msg)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(ctx.String())
	return d.Sum64()
}

// submit feeds one entry through the state machine. build is only called
// when a new record has to be materialised, so repeats never pay for the
// timestamp or the stack walk.
func (d *deduplicator) submit(sev Severity, msg string, ctx Context, build func() Record) decision {
	if !d.enabled {
		return decision{kind: emitRecord, record: build()}
	}
	key := dedupKey(sev, msg, ctx)
	if !d.hasPending {
		d.seed(key, build())
		return decision{kind: buffered}
	}
	if key == d.pendingKey {
		d.repeatCount++
		return decision{kind: suppressed}
	}
	flushed, _ := d.flush()
	d.seed(key, build())
	return decision{kind: emitThenBuffer, record: flushed}
}

func (d *deduplicator) seed(key uint64, r Record) {
	d.hasPending = true
	d.pendingKey = key
	d.pending = r
	d.repeatCount = 0
}

// flush returns the pending record, suffixed with " (xN)" when it was
// repeated, and resets the state. ok is false when nothing was pending.
func (d *deduplicator) flush() (r Record, ok bool) {
	if !d.hasPending {
		return Record{}, false
	}
	r = d.pending
	if d.repeatCount > 0 {
		r.Message = fmt.Sprintf("%s (x%d)", r.Message, d.repeatCount+1)
	}
	d.hasPending = false
	d.pendingKey = 0
	d.pending = Record{}
	d.repeatCount = 0
	return r, true
}

// pendingCount reports how many occurrences the pending record stands for.
func (d *deduplicator) pendingCount() int {
	if !d.hasPending {
		return 0
	}
	return d.repeatCount + 1
}
