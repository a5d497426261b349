package notify

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NormalizeIDList coerces a possibly mis-encoded assignment field into a flat
// list of id strings. Mobile clients have been observed sending the field as a
// proper array, a JSON-array string, a doubly-serialized JSON string, or a
// comma-joined string. Accepted shapes, tried in order:
//
//   - []string / []interface{}  -> element-wise
//   - string that parses as a JSON array (repeated, to unwind double
//     serialization) -> parsed elements
//   - comma-joined string -> split
//   - anything else -> single-element list
//
// Non-array shapes are logged for visibility; tolerance here masks what may
// well be a client bug.
func NormalizeIDList(raw interface{}) []string {
	switch value := raw.(type) {
	case nil:
		return nil
	case []string:
		return compact(value)
	case []interface{}:
		out := make([]string, 0, len(value))
		for _, element := range value {
			out = append(out, stringify(element)...)
		}
		return compact(out)
	case string:
		return normalizeString(value)
	default:
		log.Warn().Interface("value", raw).Msg("assignment field had unexpected shape")
		if s := strings.TrimSpace(stringifyScalar(value)); s != "" {
			return []string{s}
		}
		return nil
	}
}

// NormalizeUUIDList is NormalizeIDList plus uuid parsing; malformed entries
// are dropped.
func NormalizeUUIDList(raw interface{}) []uuid.UUID {
	parts := NormalizeIDList(raw)
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(part)
		if err != nil {
			log.Warn().Str("value", part).Msg("dropping unparseable id from assignment field")
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func normalizeString(value string) []string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}

	// Unwind up to two layers of JSON serialization: clients have shipped
	// both `["a","b"]` and `"[\"a\",\"b\"]"`.
	current := trimmed
	for attempt := 0; attempt < 2; attempt++ {
		if strings.HasPrefix(current, "[") {
			var parsed []interface{}
			if err := json.Unmarshal([]byte(current), &parsed); err == nil {
				log.Debug().Msg("assignment field arrived JSON-serialized")
				out := make([]string, 0, len(parsed))
				for _, element := range parsed {
					out = append(out, stringify(element)...)
				}
				return compact(out)
			}
			break
		}
		var inner string
		if err := json.Unmarshal([]byte(current), &inner); err != nil {
			break
		}
		log.Warn().Msg("assignment field arrived doubly serialized")
		current = strings.TrimSpace(inner)
	}

	if strings.Contains(current, ",") {
		return compact(strings.Split(current, ","))
	}
	return []string{current}
}

func stringify(element interface{}) []string {
	switch value := element.(type) {
	case string:
		return []string{value}
	case map[string]interface{}:
		// Populated assignee object: pull its id.
		for _, key := range []string{"id", "_id"} {
			if id, ok := value[key].(string); ok {
				return []string{id}
			}
		}
		return nil
	default:
		if s := stringifyScalar(value); s != "" {
			return []string{s}
		}
		return nil
	}
}

func stringifyScalar(value interface{}) string {
	raw, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return strings.Trim(string(raw), `"`)
}

// compact trims and drops blank entries into a fresh slice; the input may be
// caller-owned and must not be written through.
func compact(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
