package capture

import (
	"context"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "capture.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	// WHAT: Recorded attempts come back newest-first with fields intact.
	s := testStore(t)
	ctx := context.Background()

	first := &Attempt{Source: "text", RawLen: 120, Outcome: OutcomeRejected, Reason: "jsonclean: no candidate span found", DurationUs: 40}
	second := &Attempt{Source: "html", RawLen: 512, Outcome: OutcomeAccepted, ResultJSON: `{"domain":"abm.com"}`, DurationUs: 95}

	if err := s.Record(ctx, first); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Record(ctx, second); err != nil {
		t.Fatalf("record: %v", err)
	}
	if first.ID == 0 || second.ID == 0 {
		t.Error("expected assigned IDs")
	}
	if first.CreatedAt == 0 {
		t.Error("expected CreatedAt fill-in")
	}

	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Source != "html" || got[0].Outcome != OutcomeAccepted {
		t.Errorf("newest = %+v, want the html attempt", got[0])
	}
	if got[1].Reason != first.Reason {
		t.Errorf("Reason = %q, want %q", got[1].Reason, first.Reason)
	}
}

func TestRecent_Limit(t *testing.T) {
	// WHAT: The limit caps results; non-positive limit defaults to 20.
	s := testStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := s.Record(ctx, &Attempt{Source: "text", Outcome: OutcomeRejected}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := s.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}

	got, err = s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("len = %d, want 5", len(got))
	}
}

func TestCounts(t *testing.T) {
	// WHAT: Counts aggregates by outcome.
	s := testStore(t)
	ctx := context.Background()

	for _, outcome := range []string{OutcomeAccepted, OutcomeRejected, OutcomeRejected} {
		if err := s.Record(ctx, &Attempt{Source: "text", Outcome: outcome}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	st, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if st.Total != 3 || st.Accepted != 1 || st.Rejected != 2 {
		t.Errorf("stats = %+v, want total=3 accepted=1 rejected=2", st)
	}
}

func TestCounts_EmptyStore(t *testing.T) {
	s := testStore(t)
	st, err := s.Counts(context.Background())
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if st.Total != 0 {
		t.Errorf("total = %d, want 0", st.Total)
	}
}
