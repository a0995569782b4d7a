package override

// Prune returns a copy of v without nil values, empty mappings or empty
// sequences, applied bottom-up so containers that only held empty values
// disappear too. Zero scalars (0, false, "") are kept.
func Prune(v any) any {
	return prune(clone(v))
}

func prune(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			val = prune(val)
			if isEmpty(val) {
				delete(t, k)
				continue
			}
			t[k] = val
		}
		return t
	case []any:
		out := make([]any, 0, len(t))
		for _, val := range t {
			val = prune(val)
			if !isEmpty(val) {
				out = append(out, val)
			}
		}
		return out
	default:
		return v
	}
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	default:
		return false
	}
}
