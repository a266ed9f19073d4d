package response

import "strings"

// Record is an ordered set of fields parsed from a response.
// Keys are stored lowercased. A key seen more than once keeps the position
// of its first occurrence and accumulates its values in arrival order.
//
// The zero value is an empty record ready for use.
type Record struct {
	keys   []string
	values map[string][]string
}

// NewRecord builds a record from alternating key/value strings.
// It is mainly useful in tests.
func NewRecord(kv ...string) Record {
	var r Record
	for i := 0; i+1 < len(kv); i += 2 {
		r.Add(kv[i], kv[i+1])
	}
	return r
}

// Add appends a value under key (case-folded).
func (r *Record) Add(key, value string) {
	key = strings.ToLower(key)
	if r.values == nil {
		r.values = make(map[string][]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = append(r.values[key], value)
}

// Get returns the first value stored under key.
func (r Record) Get(key string) (string, bool) {
	vs := r.values[strings.ToLower(key)]
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// Value returns the first value stored under key, or "".
func (r Record) Value(key string) string {
	v, _ := r.Get(key)
	return v
}

// Values returns every value stored under key.
func (r Record) Values(key string) []string {
	return r.values[strings.ToLower(key)]
}

// Has reports whether key is present.
func (r Record) Has(key string) bool {
	_, ok := r.values[strings.ToLower(key)]
	return ok
}

// IsList reports whether key was seen more than once.
func (r Record) IsList(key string) bool {
	return len(r.values[strings.ToLower(key)]) > 1
}

// Keys returns the keys in first-occurrence order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of distinct keys.
func (r Record) Len() int { return len(r.keys) }

// Empty reports whether the record has no fields.
func (r Record) Empty() bool { return len(r.keys) == 0 }

// Delete removes key and its values.
func (r *Record) Delete(key string) {
	key = strings.ToLower(key)
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i:i], r.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy.
func (r Record) Clone() Record {
	var out Record
	for _, k := range r.keys {
		for _, v := range r.values[k] {
			out.Add(k, v)
		}
	}
	return out
}

// Equal reports whether both records hold the same keys in the same order
// with the same values.
func (r Record) Equal(other Record) bool {
	if len(r.keys) != len(other.keys) {
		return false
	}
	for i, k := range r.keys {
		if other.keys[i] != k {
			return false
		}
		a, b := r.values[k], other.values[k]
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	return true
}

// Map converts the record into a plain map: single values become strings,
// repeated keys become []string.
func (r Record) Map() map[string]any {
	out := make(map[string]any, len(r.keys))
	for _, k := range r.keys {
		vs := r.values[k]
		if len(vs) == 1 {
			out[k] = vs[0]
		} else {
			out[k] = append([]string(nil), vs...)
		}
	}
	return out
}

// retain returns a copy holding only the given keys.
func (r Record) retain(keys []string) Record {
	var out Record
	for _, k := range keys {
		for _, v := range r.values[k] {
			out.Add(k, v)
		}
	}
	return out
}
