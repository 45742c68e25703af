package gguf

import (
	"fmt"
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Metadata is the decoded key/value section of a GGUF file.
//
// Keys are unique; a key that appears twice keeps its first position and
// the last value written. Iteration follows file order, which carries no
// meaning beyond making listings stable.
type Metadata struct {
	kv *orderedmap.OrderedMap[string, Value]
}

// NewMetadata returns an empty store.
func NewMetadata() *Metadata {
	return &Metadata{kv: orderedmap.New[string, Value]()}
}

// Set stores v under key, replacing any previous value.
func (m *Metadata) Set(key string, v Value) {
	m.kv.Set(key, v)
}

// readMetadata decodes count key/value entries.
func (r *reader) readMetadata(count uint64) (*Metadata, error) {
	md := NewMetadata()
	for i := uint64(0); i < count; i++ {
		key, err := r.readString()
		if err != nil {
			return nil, fmt.Errorf("read metadata kv %d key: %w", i, err)
		}

		code, err := r.readU32()
		if err != nil {
			return nil, fmt.Errorf("read value type for %s: %w", key, err)
		}
		t, err := parseValueType(code)
		if err != nil {
			return nil, fmt.Errorf("read value type for %s: %w", key, err)
		}

		v, err := r.readValue(t)
		if err != nil {
			return nil, fmt.Errorf("read value for %s: %w", key, err)
		}
		md.Set(key, v)
	}
	return md, nil
}

// Len returns the number of distinct keys.
func (m *Metadata) Len() int {
	return m.kv.Len()
}

// Keys iterates over keys in file order.
func (m *Metadata) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for pair := m.kv.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key) {
				return
			}
		}
	}
}

// All iterates over key/value pairs in file order.
func (m *Metadata) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for pair := m.kv.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Get returns the value stored under key. A missing key is not an error.
func (m *Metadata) Get(key string) (Value, bool) {
	return m.kv.Get(key)
}

// Require returns the value stored under key or a lookup error.
func (m *Metadata) Require(key string) (Value, error) {
	v, ok := m.kv.Get(key)
	if !ok {
		return nil, keyNotFound(key)
	}
	return v, nil
}

// RequireString returns a string value. No other kind converts.
func (m *Metadata) RequireString(key string) (string, error) {
	v, err := m.Require(key)
	if err != nil {
		return "", err
	}
	s, ok := asString(v)
	if !ok {
		return "", typeMismatch(key, "string", v)
	}
	return s, nil
}

// RequireUint32 returns a u32 value. A u64 value is narrowed with a
// truncating cast: 1<<32 reads as 0 and no range error is reported.
func (m *Metadata) RequireUint32(key string) (uint32, error) {
	v, err := m.Require(key)
	if err != nil {
		return 0, err
	}
	u, ok := asUint32(v)
	if !ok {
		return 0, typeMismatch(key, "u32", v)
	}
	return u, nil
}

// RequireUint64 returns a u64 value, widening a u32 if necessary.
func (m *Metadata) RequireUint64(key string) (uint64, error) {
	v, err := m.Require(key)
	if err != nil {
		return 0, err
	}
	u, ok := asUint64(v)
	if !ok {
		return 0, typeMismatch(key, "u64", v)
	}
	return u, nil
}

// RequireFloat32 returns an f32 value. An f64 value does not convert.
func (m *Metadata) RequireFloat32(key string) (float32, error) {
	v, err := m.Require(key)
	if err != nil {
		return 0, err
	}
	f, ok := asFloat32(v)
	if !ok {
		return 0, typeMismatch(key, "f32", v)
	}
	return f, nil
}

// The Get* accessors are best-effort optional reads: a missing key and a
// value of the wrong kind both report false, and the mismatch is
// swallowed rather than surfaced. Use the Require* variants to see it.

// GetString returns the string under key, if there is one.
func (m *Metadata) GetString(key string) (string, bool) {
	s, err := m.RequireString(key)
	return s, err == nil
}

// GetUint32 returns the u32 under key, if there is one.
func (m *Metadata) GetUint32(key string) (uint32, bool) {
	u, err := m.RequireUint32(key)
	return u, err == nil
}

// GetUint64 returns the u64 under key, if there is one.
func (m *Metadata) GetUint64(key string) (uint64, bool) {
	u, err := m.RequireUint64(key)
	return u, err == nil
}

// GetFloat32 returns the f32 under key, if there is one.
func (m *Metadata) GetFloat32(key string) (float32, bool) {
	f, err := m.RequireFloat32(key)
	return f, err == nil
}

// GetArray returns the array under key, if there is one.
func (m *Metadata) GetArray(key string) (Array, bool) {
	v, ok := m.kv.Get(key)
	if !ok {
		return Array{}, false
	}
	a, ok := v.(Array)
	return a, ok
}

// Architecture returns general.architecture, or "" when unset.
func (m *Metadata) Architecture() string {
	arch, _ := m.GetString("general.architecture")
	return arch
}
