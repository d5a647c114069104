package upstream

import (
	"bytes"
	"strings"
	"unicode"

	json "github.com/goccy/go-json"
)

// Camelize rewrites every object key of a JSON document from snake_case to
// camelCase, recursively. Values are left alone.
func Camelize(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return json.Marshal(camelizeValue(doc))
}

func camelizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[CamelKey(k)] = camelizeValue(val)
		}
		return out
	case []any:
		for i := range t {
			t[i] = camelizeValue(t[i])
		}
		return t
	default:
		return v
	}
}

// CamelKey converts one key: "is_take_over" becomes "isTakeOver".
// Leading underscores and keys without underscores are kept.
func CamelKey(key string) string {
	if !strings.Contains(key, "_") {
		return key
	}
	trimmed := strings.TrimLeft(key, "_")
	prefix := key[:len(key)-len(trimmed)]

	var b strings.Builder
	b.Grow(len(key))
	b.WriteString(prefix)
	upper := false
	for i, r := range trimmed {
		if r == '_' {
			upper = i > 0
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
