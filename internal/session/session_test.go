package session

import "testing"

func TestShouldAbort(t *testing.T) {
	s := New()

	for i := 0; i < AbortCeiling-1; i++ {
		s.ObserveBlock()
		if s.ShouldAbort() {
			t.Fatalf("abort recommended after %d blocks, ceiling is %d", i+1, AbortCeiling)
		}
	}

	s.ObserveBlock()
	if !s.ShouldAbort() {
		t.Errorf("abort not recommended after %d consecutive blocks", AbortCeiling)
	}
}

func TestPassResetsStreak(t *testing.T) {
	s := New()

	for i := 0; i < AbortCeiling-1; i++ {
		s.ObserveBlock()
	}
	s.ObservePass()
	s.ObserveBlock()

	if s.ShouldAbort() {
		t.Error("a non-blocked decision must reset the streak")
	}
	if s.ConsecutiveBlocks != 1 {
		t.Errorf("ConsecutiveBlocks = %d, want 1", s.ConsecutiveBlocks)
	}
}

func TestReset(t *testing.T) {
	s := New()
	s.ObserveBlock()
	s.LastLoggedActionKey = "blocked:click:{}"

	s.Reset()

	if s.ConsecutiveBlocks != 0 || s.LastLoggedActionKey != "" {
		t.Errorf("Reset left state %+v", s)
	}
}
