// Package manifest implements canonical formatting of package.json
// manifests.
//
// A manifest is parsed into an order-preserving value tree, its top-level
// keys are partitioned into known, public-unknown, and private-unknown
// buckets, known values are rewritten by per-field transforms, and the
// result is rendered back to JSON. No data is ever added or dropped; the
// only changes are key reordering and the explicitly specified string-array
// deduplication.
package manifest

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object with member order preserved. Values are one of
// *Object, []any, string, bool, json.Number, or nil.
type Object struct {
	Members []Member
}

// Get returns the value of the first member with the given key.
func (o *Object) Get(key string) (any, bool) {
	for _, m := range o.Members {
		if m.Key == key {
			return m.Value, true
		}
	}

	return nil, false
}

// Keys returns the member keys in order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.Members))
	for i, m := range o.Members {
		keys[i] = m.Key
	}

	return keys
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.Members)
}
