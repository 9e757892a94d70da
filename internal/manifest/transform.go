package manifest

import (
	"sort"
	"strings"
)

// applyTransform dispatches a field's transform over its value. Every
// transform is a no-op when the value's shape does not match what it
// expects; malformed manifests are tolerated, never rejected.
func applyTransform(desc FieldDescriptor, v any, opts Options) any {
	switch desc.Transform {
	case TransformSortAlphabetical:
		return sortAlphabetical(v)
	case TransformSortRecursive:
		return sortRecursive(v)
	case TransformSortUniqueArray:
		return sortUniqueArray(v)
	case TransformSortSubkeyOrder:
		return sortSubkeyOrder(v, desc.SubkeyOrder)
	case TransformSortExports:
		return sortExports(v)
	case TransformSortPeople:
		return sortPeople(v)
	case TransformSortPeopleArray:
		return sortPeopleArray(v)
	case TransformSortScripts:
		if opts.SortScripts {
			return sortAlphabetical(v)
		}

		return v
	default:
		return v
	}
}

// sortAlphabetical reorders an object's members by key, one level deep.
func sortAlphabetical(v any) any {
	obj, ok := v.(*Object)
	if !ok {
		return v
	}

	out := &Object{Members: append([]Member(nil), obj.Members...)}
	sortMembers(out.Members)

	return out
}

// sortRecursive reorders an object's members by key at every nesting level.
func sortRecursive(v any) any {
	obj, ok := v.(*Object)
	if !ok {
		return v
	}

	out := &Object{Members: make([]Member, len(obj.Members))}

	for i, m := range obj.Members {
		m.Value = sortRecursive(m.Value)
		out.Members[i] = m
	}

	sortMembers(out.Members)

	return out
}

// sortUniqueArray sorts and deduplicates the string elements of an array.
// Non-string elements are never dropped or deduplicated; they follow the
// strings in their original relative order.
func sortUniqueArray(v any) any {
	arr, ok := v.([]any)
	if !ok {
		return v
	}

	var (
		strs []string
		rest []any
	)

	for _, e := range arr {
		if s, isStr := e.(string); isStr {
			strs = append(strs, s)
		} else {
			rest = append(rest, e)
		}
	}

	sort.Strings(strs)

	out := make([]any, 0, len(arr))

	for i, s := range strs {
		if i > 0 && s == strs[i-1] {
			continue
		}

		out = append(out, s)
	}

	return append(out, rest...)
}

// sortSubkeyOrder emits the keys listed in order first, in that fixed
// sequence, when present; remaining keys follow alphabetically. Values are
// untouched.
func sortSubkeyOrder(v any, order []string) any {
	obj, ok := v.(*Object)
	if !ok {
		return v
	}

	out := &Object{Members: make([]Member, 0, len(obj.Members))}
	used := make([]bool, len(obj.Members))

	for _, want := range order {
		for i, m := range obj.Members {
			if !used[i] && m.Key == want {
				out.Members = append(out.Members, m)
				used[i] = true
			}
		}
	}

	var rest []Member

	for i, m := range obj.Members {
		if !used[i] {
			rest = append(rest, m)
		}
	}

	sortMembers(rest)
	out.Members = append(out.Members, rest...)

	return out
}

// personKeyOrder is the conventional member order for people objects.
var personKeyOrder = []string{"name", "email", "url"}

func sortPeople(v any) any {
	return sortSubkeyOrder(v, personKeyOrder)
}

// sortPeopleArray applies the person ordering to every object element;
// non-object elements and the elements' relative order are preserved.
func sortPeopleArray(v any) any {
	arr, ok := v.([]any)
	if !ok {
		return v
	}

	out := make([]any, len(arr))

	for i, e := range arr {
		out[i] = sortPeople(e)
	}

	return out
}

// Conditional-exports condition groups, in output order.
const (
	groupPath = iota
	groupTypes
	groupOther
	groupDefault
)

func exportsGroup(key string) int {
	switch {
	case strings.HasPrefix(key, "."):
		return groupPath
	case key == "types" || strings.HasPrefix(key, "types@"):
		return groupTypes
	case key == "default":
		return groupDefault
	default:
		return groupOther
	}
}

// sortExports orders a conditional-exports map: path conditions first, then
// types conditions, then the remaining named conditions, then default, each
// group sorted by key. Nested maps are reordered the same way.
func sortExports(v any) any {
	obj, ok := v.(*Object)
	if !ok {
		return v
	}

	out := &Object{Members: make([]Member, len(obj.Members))}

	for i, m := range obj.Members {
		if child, isObj := m.Value.(*Object); isObj {
			m.Value = sortExports(child)
		}

		out.Members[i] = m
	}

	sort.SliceStable(out.Members, func(i, j int) bool {
		gi, gj := exportsGroup(out.Members[i].Key), exportsGroup(out.Members[j].Key)
		if gi != gj {
			return gi < gj
		}

		return out.Members[i].Key < out.Members[j].Key
	})

	return out
}
