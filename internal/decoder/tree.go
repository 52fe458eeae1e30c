package decoder

import "fmt"

// asMapping normalizes the mapping shapes YAML and HCL decoding produce.
// Keys of map[any]any are stringified into a new map.
func asMapping(v any) (map[string]any, bool) {
	switch tv := v.(type) {
	case map[string]any:
		return tv, true
	case map[any]any:
		out := make(map[string]any, len(tv))
		for k, elem := range tv {
			out[fmt.Sprint(k)] = elem
		}
		return out, true
	}
	return nil, false
}

// asSequence normalizes sequence shapes.
func asSequence(v any) ([]any, bool) {
	switch tv := v.(type) {
	case []any:
		return tv, true
	case []string:
		out := make([]any, len(tv))
		for i, s := range tv {
			out[i] = s
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(tv))
		for i, m := range tv {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

// withLabel returns a copy of m with the label field set.
func withLabel(m map[string]any, field, label string) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[field] = label
	return out
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int32, int64, uint, uint64, float32, float64:
		return "number"
	}
	if _, ok := asMapping(v); ok {
		return "mapping"
	}
	if _, ok := asSequence(v); ok {
		return "sequence"
	}
	return fmt.Sprintf("%T", v)
}
