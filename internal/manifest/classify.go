package manifest

import (
	"sort"
	"strings"
)

// classify partitions the manifest's top-level members into the three output
// buckets and rewrites known values through their field transforms. Known
// fields come first in ascending priority, then unknown public keys, then
// unknown private (underscore-prefixed) keys, the latter two sorted by
// byte-wise lexicographic comparison. Every input member appears exactly
// once in the result.
func classify(obj *Object, opts Options) *Object {
	type ranked struct {
		priority int
		member   Member
	}

	var (
		known           []ranked
		public, private []Member
	)

	for _, m := range obj.Members {
		desc, ok := LookupField(m.Key)

		switch {
		case ok:
			m.Value = applyTransform(desc, m.Value, opts)
			known = append(known, ranked{priority: desc.Priority, member: m})
		case strings.HasPrefix(m.Key, "_"):
			private = append(private, m)
		default:
			public = append(public, m)
		}
	}

	// Priorities are unique, but a malformed manifest may repeat a key;
	// stable sorts keep such duplicates in input order.
	sort.SliceStable(known, func(i, j int) bool { return known[i].priority < known[j].priority })
	sortMembers(public)
	sortMembers(private)

	out := &Object{Members: make([]Member, 0, len(obj.Members))}

	for _, k := range known {
		out.Members = append(out.Members, k.member)
	}

	out.Members = append(out.Members, public...)
	out.Members = append(out.Members, private...)

	return out
}

// sortMembers orders members by key ascending, in place.
func sortMembers(members []Member) {
	sort.SliceStable(members, func(i, j int) bool { return members[i].Key < members[j].Key })
}
