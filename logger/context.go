package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Field is one key/value pair of a Context.
type Field struct {
	Key   string
	Value any
}

// Context is an ordered string-keyed mapping attached to a log entry.
// Order is insertion order and is preserved when serialised, so identical
// contexts always serialise to identical bytes.
type Context []Field

// KV builds a Context from alternating key/value arguments.
// Pairs whose key is not a string are skipped, as is a trailing key without
// a value. A later duplicate key replaces the earlier value in place.
func KV(keyvals ...any) Context {
	if len(keyvals) == 0 {
		return nil
	}
	ctx := make(Context, 0, len(keyvals)/2)
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.With(key, keyvals[i+1])
	}
	return ctx
}

// With returns a copy of c with key set to value.
func (c Context) With(key string, value any) Context {
	out := make(Context, len(c), len(c)+1)
	copy(out, c)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Field{Key: key, Value: value})
}

// Merge returns a copy of c with every field of other applied on top.
func (c Context) Merge(other Context) Context {
	out := make(Context, len(c), len(c)+len(other))
	copy(out, c)
	for _, f := range other {
		out = out.With(f.Key, f.Value)
	}
	return out
}

// Get returns the value stored under key.
func (c Context) Get(key string) (any, bool) {
	for _, f := range c {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Len returns the number of fields.
func (c Context) Len() int {
	return len(c)
}

// MarshalJSON renders c as a JSON object in insertion order.
func (c Context) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(marshalValue(f.Value))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String returns the JSON form, or "" for an empty context.
func (c Context) String() string {
	if len(c) == 0 {
		return ""
	}
	b, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprint([]Field(c))
	}
	return string(b)
}

func marshalValue(v any) []byte {
	switch val := v.(type) {
	case error:
		v = val.Error()
	case fmt.Stringer:
		if _, ok := v.(json.Marshaler); !ok {
			v = val.String()
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		b, _ = json.Marshal(fmt.Sprint(v))
	}
	return b
}

// Interpolate replaces {key} placeholders in msg with values
// from ctx. Keys starting with an underscore are never substituted.
// Scalars are rendered with fmt, everything else as JSON.
func Interpolate(msg string, ctx Context) string {
	if len(ctx) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(ctx)*2)
	for _, f := range ctx {
		if f.Key == "" || strings.HasPrefix(f.Key, "_") {
			continue
		}
		pairs = append(pairs, "{"+f.Key+"}", placeholderValue(f.Value))
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

func placeholderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(val)
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	}
	return string(marshalValue(v))
}
