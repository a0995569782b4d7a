package override

import (
	"fmt"
	"reflect"
	"sort"
)

// clone deep-copies a document value, normalising YAML decoder shapes
// (map[any]any, typed slices and maps) into map[string]any and []any.
func clone(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = clone(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = clone(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = clone(val)
		}
		return out
	case *Ordered:
		if t == nil {
			return nil
		}
		return t.AsMap()
	case string, bool, int, int64, float64:
		return t
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = clone(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = clone(rv.Index(i).Interface())
		}
		return out
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return clone(rv.Elem().Interface())
	default:
		return v
	}
}

// cloneMap deep-copies m, returning an empty map for nil.
func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return clone(m).(map[string]any)
}

// asMap reports whether v is a mapping after normalisation.
func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// asList reports whether v is a sequence after normalisation.
func asList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// sortedKeys returns the keys of m in lexicographic order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// joinPath extends a dotted document path used in error messages.
func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// indexPath addresses a list entry by identifier.
func indexPath(parent, id string) string {
	return fmt.Sprintf("%s[%s]", parent, id)
}

// stringValue returns v when it is a non-empty string.
func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok && s != ""
}
