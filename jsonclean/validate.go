package jsonclean

import (
	"encoding/json"
	"fmt"
	"strings"
)

// IsValid reports whether jsonText is an acceptable document: valid JSON,
// free of placeholder markers, with a required key present in the
// representative record.
func (c *Cleaner) IsValid(jsonText string) bool {
	return c.Validate(jsonText) == nil
}

// Validate is IsValid with the rejection reason. Returns nil on acceptance.
func (c *Cleaner) Validate(jsonText string) error {
	if jsonText == "" {
		return ErrSyntax
	}

	var data any
	if err := json.Unmarshal([]byte(jsonText), &data); err != nil {
		c.logger.Debug("jsonclean: invalid syntax", "error", err)
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	// Placeholder markers anywhere in the rendered text mark sample output.
	lower := strings.ToLower(jsonText)
	for _, marker := range c.placeholders {
		if strings.Contains(lower, marker) {
			c.logger.Debug("jsonclean: placeholder marker present", "marker", marker)
			return fmt.Errorf("%w: %q", ErrPlaceholder, marker)
		}
	}

	switch doc := data.(type) {
	case map[string]any:
		if !hasAnyKey(doc, c.required) {
			c.logger.Debug("jsonclean: missing required field", "required", c.required)
			return ErrMissingField
		}
	case []any:
		if len(doc) == 0 {
			c.logger.Debug("jsonclean: empty array rejected")
			return ErrEmptyArray
		}
		// Arrays are assumed homogeneous: only the first element is
		// checked, and only if it is itself an object.
		if first, ok := doc[0].(map[string]any); ok && !hasAnyKey(first, c.required) {
			c.logger.Debug("jsonclean: array items missing required field", "required", c.required)
			return ErrMissingField
		}
	}

	return nil
}

func hasAnyKey(obj map[string]any, keys []string) bool {
	for _, k := range keys {
		if _, ok := obj[k]; ok {
			return true
		}
	}
	return false
}
