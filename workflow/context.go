package workflow

import (
	"reflect"

	"github.com/google/uuid"
)

// Context is the mutable keyed store threaded through an execution tree.
//
// Context is intentionally unsynchronised — callers serialise access
// (see the package-level concurrency contract documented on
// ParallelWorkflow). A Context is created once at the root of execution
// and passed by reference to children; ForEachWorkflow and RepeatWorkflow
// write a per-iteration variable into the same Context rather than
// creating a new one.
type Context struct {
	// CorrelationID identifies one root execution, for logging and metrics.
	CorrelationID uuid.UUID

	values map[string]any
}

// NewContext creates an empty Context with a fresh correlation ID.
func NewContext() *Context {
	return &Context{
		CorrelationID: uuid.New(),
		values:        make(map[string]any),
	}
}

// NewContextFrom creates a Context pre-populated from seed, without
// retaining a reference to the seed map itself.
func NewContextFrom(seed map[string]any) *Context {
	c := NewContext()
	for k, v := range seed {
		c.values[k] = v
	}
	return c
}

// Put inserts or overwrites key.
func (c *Context) Put(key string, value any) {
	c.values[key] = value
}

// Get returns the value stored at key, and whether it was present.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// ContainsKey reports whether key has a stored value.
func (c *Context) ContainsKey(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Delete removes key, if present.
func (c *Context) Delete(key string) {
	delete(c.values, key)
}

// Keys returns the currently stored keys, in no particular order.
func (c *Context) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	return keys
}

// GetTyped returns the value at key as a T. If the key
// is absent, or the stored value cannot be assigned to T, it is treated
// as absent — this never returns a type-assertion failure, per the
// getTyped contract: downstream callers see "missing" rather than a
// cast error.
func GetTyped[T any](c *Context, key string) (T, bool) {
	var zero T
	raw, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Iterate reads key as an ordered slice. Supported stored shapes are
// []any and any other slice type (via reflection, to accommodate typed
// slices written directly by Go callers rather than through JSON
// decoding). Returns ok=false if key is absent or not a slice/array.
func (c *Context) Iterate(key string) ([]any, bool) {
	raw, ok := c.Get(key)
	if !ok {
		return nil, false
	}
	if items, ok := raw.([]any); ok {
		return items, true
	}
	v := reflect.ValueOf(raw)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, v.Len())
	for i := range out {
		out[i] = v.Index(i).Interface()
	}
	return out, true
}

// IterateMap reads key as a map[string]any. Returns ok=false if key is
// absent or not a string-keyed map.
func (c *Context) IterateMap(key string) (map[string]any, bool) {
	raw, ok := c.Get(key)
	if !ok {
		return nil, false
	}
	if m, ok := raw.(map[string]any); ok {
		return m, true
	}
	return nil, false
}

// Clone returns a shallow, independent copy of c: a new underlying map
// with the same key/value pairs, but the values themselves are not
// deep-copied. This is the mechanism behind
// ParallelWorkflow{ShareContext: false} — each branch executes against
// its own Clone, and successful branch mutations are discarded when the
// clone goes out of scope; nothing merges them back into the parent.
func (c *Context) Clone() *Context {
	clone := &Context{
		CorrelationID: c.CorrelationID,
		values:        make(map[string]any, len(c.values)),
	}
	for k, v := range c.values {
		clone.values[k] = v
	}
	return clone
}
