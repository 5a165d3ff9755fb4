package instrument

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// Masked replaces redacted values.
const Masked = "***"

// MaskKeys normalizes field names into a lookup set.
func MaskKeys(fields []string) map[string]struct{} {
	keys := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			keys[f] = struct{}{}
		}
	}
	return keys
}

// MaskData returns a copy of a decoded JSON value with the values of masked
// keys replaced, at any depth.
func MaskData(v any, keys map[string]struct{}) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if _, found := keys[strings.ToLower(k)]; found {
				out[k] = Masked
				continue
			}
			out[k] = MaskData(child, keys)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = MaskData(child, keys)
		}
		return out
	default:
		return v
	}
}

// MaskJSON masks a JSON document. ok is false when payload is not JSON.
func MaskJSON(payload []byte, keys map[string]struct{}) (string, bool) {
	if len(payload) == 0 || (payload[0] != '{' && payload[0] != '[') {
		return "", false
	}

	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return "", false
	}

	out, err := json.Marshal(MaskData(doc, keys))
	if err != nil {
		return "", false
	}
	return string(out), true
}

func maskAttr(a slog.Attr, keys map[string]struct{}) slog.Attr {
	if _, found := keys[strings.ToLower(a.Key)]; found {
		return slog.String(a.Key, Masked)
	}

	switch a.Value.Kind() {
	case slog.KindGroup:
		group := a.Value.Group()
		masked := make([]slog.Attr, len(group))
		for i, ga := range group {
			masked[i] = maskAttr(ga, keys)
		}
		a.Value = slog.GroupValue(masked...)
	case slog.KindString:
		if s, ok := MaskJSON([]byte(a.Value.String()), keys); ok {
			a.Value = slog.StringValue(s)
		}
	case slog.KindAny:
		switch v := a.Value.Any().(type) {
		case map[string]any, []any:
			a.Value = slog.AnyValue(MaskData(v, keys))
		case map[string]string:
			m := make(map[string]any, len(v))
			for k, s := range v {
				m[k] = s
			}
			a.Value = slog.AnyValue(MaskData(m, keys))
		case []byte:
			if s, ok := MaskJSON(v, keys); ok {
				a.Value = slog.StringValue(s)
			}
		}
	}

	return a
}
