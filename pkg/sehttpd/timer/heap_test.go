package timer

import (
	"testing"
	"time"
)

func withFakeClock(t *testing.T, start time.Time) func(advance time.Duration) {
	now := start
	Now = func() time.Time { return now }
	t.Cleanup(func() { Now = time.Now })
	return func(advance time.Duration) { now = now.Add(advance) }
}

func TestRootIsAlwaysEarliest(t *testing.T) {
	advance := withFakeClock(t, time.Unix(0, 0))
	_ = advance

	q := New()
	q.Add("c1", 500*time.Millisecond, func(Conn) {})
	q.Add("c2", 100*time.Millisecond, func(Conn) {})
	q.Add("c3", 900*time.Millisecond, func(Conn) {})

	d, ok := q.NextDeadline()
	if !ok {
		t.Fatalf("expected a live deadline")
	}
	if d != 100*time.Millisecond {
		t.Fatalf("expected root deadline 100ms, got %v", d)
	}
}

func TestCancelIsTombstoneNotRemoval(t *testing.T) {
	advance := withFakeClock(t, time.Unix(0, 0))

	q := New()
	ref1 := q.Add("c1", 100*time.Millisecond, func(Conn) {})
	q.Add("c2", 200*time.Millisecond, func(Conn) {})

	q.Cancel(ref1)
	// still physically present until popped
	if q.Len() != 2 {
		t.Fatalf("expected tombstoned entry to remain in heap, len=%d", q.Len())
	}

	advance(50 * time.Millisecond)
	d, ok := q.NextDeadline()
	if !ok {
		t.Fatalf("expected a live deadline")
	}
	// root (c1, tombstoned) must be skipped/purged; root now c2
	if d != 150*time.Millisecond {
		t.Fatalf("expected 150ms after skipping tombstone, got %v", d)
	}
	if q.Len() != 1 {
		t.Fatalf("tombstone should have been purged by NextDeadline, len=%d", q.Len())
	}
}

func TestExpireDueInvokesOnlyLiveDueEntries(t *testing.T) {
	advance := withFakeClock(t, time.Unix(0, 0))

	q := New()
	var fired []string
	q.Add("early", 10*time.Millisecond, func(c Conn) { fired = append(fired, c.(string)) })
	lateRef := q.Add("late", 1000*time.Millisecond, func(c Conn) { fired = append(fired, c.(string)) })
	cancelledRef := q.Add("cancelled", 10*time.Millisecond, func(c Conn) { fired = append(fired, c.(string)) })
	q.Cancel(cancelledRef)
	q.Cancel(Ref{}) // no-op on zero value
	cancelled := q.Add("cancelled2", 5*time.Millisecond, func(c Conn) { fired = append(fired, c.(string)) })
	q.Cancel(cancelled)
	_ = lateRef

	advance(20 * time.Millisecond)
	q.ExpireDue(Now())

	if len(fired) != 1 || fired[0] != "early" {
		t.Fatalf("expected only 'early' to fire, got %v", fired)
	}
}

func TestExpireDueNeverFiresEntryTwice(t *testing.T) {
	withFakeClock(t, time.Unix(0, 0))

	q := New()
	calls := 0
	q.Add("c", 0, func(Conn) { calls++ })
	q.ExpireDue(Now())
	q.ExpireDue(Now())

	if calls != 1 {
		t.Fatalf("expected exactly one invocation, got %d", calls)
	}
}
