// Package jsonclean recovers a single well-formed JSON document from the
// noisy text an AI answer panel renders into a search results page.
//
// Upstream text arrives wrapped in markdown fences, split across sibling DOM
// nodes, prefixed with boilerplate phrases, or with the literal format label
// concatenated into string values. The pipeline:
//
//	raw text → cleanup rules → span discovery → balance scan →
//	integrity double-check → value sanitation → validation
//
// Every failure mode resolves to an empty result; nothing panics and no error
// escapes Extract. Cleaners are stateless between calls and safe for
// concurrent use.
package jsonclean

import (
	"log/slog"
	"strings"
)

// Options configures a Cleaner. The zero value uses the production defaults.
type Options struct {
	// Placeholders are lowercase substrings whose presence anywhere in a
	// candidate document marks it as sample/template output.
	Placeholders []string

	// RequiredKeys lists field names of which at least one must be present
	// in the representative record of an accepted document.
	RequiredKeys []string

	Logger *slog.Logger
}

func (o *Options) defaults() {
	if len(o.Placeholders) == 0 {
		o.Placeholders = []string{"example", "domain.com"}
	}
	if len(o.RequiredKeys) == 0 {
		o.RequiredKeys = []string{"domain", "patterns"}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Cleaner runs the JSON recovery pipeline.
type Cleaner struct {
	placeholders []string
	required     []string
	logger       *slog.Logger
}

// New creates a Cleaner.
func New(opts Options) *Cleaner {
	opts.defaults()
	return &Cleaner{
		placeholders: opts.Placeholders,
		required:     opts.RequiredKeys,
		logger:       opts.Logger,
	}
}

// Extract recovers a clean JSON document from raw answer text. It returns the
// accepted document as a compact JSON string, or "" when no usable JSON was
// found.
func (c *Cleaner) Extract(text string) string {
	out, _ := c.ExtractReason(text)
	return out
}

// ExtractReason is Extract plus the rejection reason. The error is one of the
// package sentinels (possibly wrapped) and is nil exactly when the returned
// string is non-empty.
func (c *Cleaner) ExtractReason(text string) (string, error) {
	if text == "" {
		return "", ErrNoCandidate
	}

	cleaned := applyRules(text)

	start := strings.IndexAny(cleaned, "{[")
	if start < 0 {
		return "", ErrNoCandidate
	}

	end, st := scanSpan(cleaned, start)
	if end < 0 {
		c.logger.Debug("jsonclean: document never closes",
			"braces", st.braces, "brackets", st.brackets, "in_string", st.inString)
		return "", ErrIncomplete
	}

	candidate := strings.TrimSpace(cleaned[start : end+1])

	// Defense in depth: the allow-list pass can shift brace semantics in
	// adversarial input, so the span is re-checked independently.
	if !CheckBalance(candidate) {
		c.logger.Debug("jsonclean: integrity check failed", "candidate", preview(candidate))
		return "", ErrIntegrity
	}

	candidate = c.Sanitize(candidate)

	if err := c.Validate(candidate); err != nil {
		return "", err
	}
	return candidate, nil
}

// preview truncates a candidate for log output.
func preview(s string) string {
	if len(s) > 100 {
		return s[:100]
	}
	return s
}
