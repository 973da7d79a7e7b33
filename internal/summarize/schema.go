package summarize

import (
	"fmt"
	"strings"
)

// NotReported is the sentinel substituted for missing or empty fields.
const NotReported = "Not reported"

// Result is a structured summary holding one string value per schema key.
// Field order is carried by the Config's SchemaKeys, not the map.
type Result map[string]string

// EnsureSchema coerces an arbitrary decoded object into the given schema.
// Every key in keys is present in the output; values are stringified if
// needed and trimmed, with NotReported substituted for anything missing,
// null, or empty. Keys outside the schema are dropped.
func EnsureSchema(d map[string]any, keys []string) Result {
	out := make(Result, len(keys))
	for _, k := range keys {
		v, ok := d[k]
		if !ok || v == nil {
			out[k] = NotReported
			continue
		}
		s, isStr := v.(string)
		if !isStr {
			s = fmt.Sprint(v)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			s = NotReported
		}
		out[k] = s
	}
	return out
}
