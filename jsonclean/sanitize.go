package jsonclean

import (
	"encoding/json"
	"regexp"
	"strings"
)

// formatLabel is the literal word the upstream renderer concatenates into
// string values, e.g. "jsonabm.comjson" for a value that should read
// "abm.com".
const formatLabel = "json"

// domainShape guards label stripping: the remainder must still look like a
// domain name, so ordinary prose containing the label is left alone.
var domainShape = regexp.MustCompile(`(?i)^[a-z0-9][a-z0-9.-]*[a-z0-9]\.[a-z]{2,}$`)

// Sanitize decodes jsonText, cleans every string value, and re-encodes.
// Sanitation is best-effort, not a correctness gate: if the input does not
// decode, it is returned unchanged. Object keys come back in lexicographic
// order; structure is otherwise preserved.
func (c *Cleaner) Sanitize(jsonText string) string {
	var data any
	if err := json.Unmarshal([]byte(jsonText), &data); err != nil {
		return jsonText
	}

	cleaned := c.cleanTree(data)

	out, err := json.Marshal(cleaned)
	if err != nil {
		return jsonText
	}
	return string(out)
}

// cleanTree visits a decoded JSON value, descending into objects and arrays
// and cleaning string leaves. Other scalar types pass through untouched.
func (c *Cleaner) cleanTree(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = c.cleanTree(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = c.cleanTree(val)
		}
		return out
	case string:
		return c.cleanValue(t)
	default:
		return v
	}
}

// cleanValue removes known UI artifacts from a single string value.
func (c *Cleaner) cleanValue(val string) string {
	original := val

	val = strings.TrimSpace(reBoilerplate.ReplaceAllString(val, ""))

	// Strip the format label from either end, up to two passes to catch
	// values with the artifact duplicated on both sides.
	for i := 0; i < 2; i++ {
		lower := strings.ToLower(val)
		if strings.HasPrefix(lower, formatLabel) && domainShape.MatchString(val[len(formatLabel):]) {
			val = val[len(formatLabel):]
			continue
		}
		if strings.HasSuffix(lower, formatLabel) && domainShape.MatchString(val[:len(val)-len(formatLabel)]) {
			val = val[:len(val)-len(formatLabel)]
			continue
		}
		break
	}

	if val != original {
		c.logger.Debug("jsonclean: sanitized value", "from", original, "to", val)
	}
	return val
}
