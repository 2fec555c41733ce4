package jsonclean

import "errors"

// ErrNoCandidate is returned when the text contains no JSON-like span at all.
var ErrNoCandidate = errors.New("jsonclean: no candidate span found")

// ErrIncomplete is returned when the span scan exhausts the input before the
// outer container closes.
var ErrIncomplete = errors.New("jsonclean: document never closes")

// ErrIntegrity is returned when the standalone balance check disagrees with
// the span scan.
var ErrIntegrity = errors.New("jsonclean: integrity check failed")

// ErrSyntax is returned when a candidate does not decode as JSON.
var ErrSyntax = errors.New("jsonclean: invalid syntax")

// ErrPlaceholder is returned when a candidate contains a placeholder marker.
var ErrPlaceholder = errors.New("jsonclean: placeholder marker present")

// ErrMissingField is returned when the representative record has none of the
// required keys.
var ErrMissingField = errors.New("jsonclean: missing required field")

// ErrEmptyArray is returned when the decoded document is an empty array.
var ErrEmptyArray = errors.New("jsonclean: empty array")
