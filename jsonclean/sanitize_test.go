package jsonclean

import "testing"

func TestSanitize_DomainArtifactBothEnds(t *testing.T) {
	// WHAT: The format label concatenated onto both ends of a domain value is
	// stripped.
	c := New(Options{})
	got := c.Sanitize(`{"domain":"jsonabm.comjson"}`)
	want := `{"domain":"abm.com"}`
	if got != want {
		t.Errorf("Sanitize = %q, want %q", got, want)
	}
}

func TestSanitize_BoilerplateInsideValue(t *testing.T) {
	// WHAT: The caution phrase interleaved into a value is removed before the
	// label strip runs.
	// WHY: Fragmented answers concatenate the phrase directly into values.
	c := New(Options{})
	got := c.Sanitize(`{"domain":"Use code with caution.jsonabm.comUse code with caution.json"}`)
	want := `{"domain":"abm.com"}`
	if got != want {
		t.Errorf("Sanitize = %q, want %q", got, want)
	}
}

func TestSanitize_ProseKeepsLabel(t *testing.T) {
	// WHAT: Values that merely contain the label word are left alone.
	// WHY: The strip is guarded by the domain-shape check; prose is not a
	// domain.
	c := New(Options{})
	cases := []string{
		`{"notes":"json parsing is fun"}`,
		`{"notes":"json"}`,
		`{"notes":"prefer json over xml"}`,
	}
	for _, in := range cases {
		if got := c.Sanitize(in); got != in {
			t.Errorf("Sanitize(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestSanitize_NonStringScalarsUntouched(t *testing.T) {
	// WHAT: Numbers, booleans, and nulls pass through; only strings are
	// cleaned.
	c := New(Options{})
	in := `{"n":3,"b":true,"z":null,"s":"jsonabm.comjson"}`
	want := `{"b":true,"n":3,"s":"abm.com","z":null}`
	if got := c.Sanitize(in); got != want {
		t.Errorf("Sanitize = %q, want %q", got, want)
	}
}

func TestSanitize_NestedStructures(t *testing.T) {
	// WHAT: Cleaning descends into nested objects and arrays.
	c := New(Options{})
	in := `[{"domain":"jsonabm.comjson","tags":["jsonxyz.iojson"]}]`
	want := `[{"domain":"abm.com","tags":["xyz.io"]}]`
	if got := c.Sanitize(in); got != want {
		t.Errorf("Sanitize = %q, want %q", got, want)
	}
}

func TestSanitize_FailOpenOnInvalidInput(t *testing.T) {
	// WHAT: Undecodable input is returned unchanged.
	// WHY: Sanitation is best-effort, not a correctness gate.
	c := New(Options{})
	in := `{"broken":`
	if got := c.Sanitize(in); got != in {
		t.Errorf("Sanitize = %q, want input unchanged", got)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	// WHAT: sanitize(sanitize(x)) == sanitize(x) for valid JSON x.
	c := New(Options{})
	cases := []string{
		`{"domain":"jsonabm.comjson","notes":"ok"}`,
		`[{"patterns":["a"]}]`,
		`{"n":1,"s":"Use code with caution. hello"}`,
	}
	for _, in := range cases {
		once := c.Sanitize(in)
		twice := c.Sanitize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
