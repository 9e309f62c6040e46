package resize

import (
	"testing"
	"time"
)

func TestNewDefaultsWindow(t *testing.T) {
	s := New(0)
	if p := s.Raw(); p.Delay != DefaultWindow {
		t.Errorf("Delay = %v, want %v", p.Delay, DefaultWindow)
	}

	s = New(250 * time.Millisecond)
	if p := s.Raw(); p.Delay != 250*time.Millisecond {
		t.Errorf("Delay = %v, want 250ms", p.Delay)
	}
}

func TestSettleOnlyNewest(t *testing.T) {
	s := New(DefaultWindow)
	calls := 0
	s.Subscribe("a", func() { calls++ })

	first := s.Raw()
	second := s.Raw()

	if s.Settle(first.Gen) {
		t.Error("stale generation should not settle")
	}
	if calls != 0 {
		t.Fatalf("expected no dispatch, got %d", calls)
	}
	if !s.Settle(second.Gen) {
		t.Error("current generation should settle")
	}
	if calls != 1 {
		t.Errorf("expected 1 dispatch, got %d", calls)
	}
}

func TestImmediateHasNoDelay(t *testing.T) {
	s := New(DefaultWindow)
	p := s.Immediate()
	if p.Delay != 0 {
		t.Errorf("Delay = %v, want 0", p.Delay)
	}
	if !s.Settle(p.Gen) {
		t.Error("immediate pending should settle")
	}
}

func TestSubscribeReplacesAndUnsubscribe(t *testing.T) {
	s := New(DefaultWindow)
	var got []string
	s.Subscribe("a", func() { got = append(got, "old") })
	s.Subscribe("a", func() { got = append(got, "new") })
	s.Subscribe("b", func() { got = append(got, "b") })

	if s.Subscribers() != 2 {
		t.Fatalf("expected 2 subscribers, got %d", s.Subscribers())
	}

	s.Settle(s.Raw().Gen)
	if len(got) != 2 || got[0] != "new" || got[1] != "b" {
		t.Errorf("dispatch order = %v, want [new b]", got)
	}

	s.Unsubscribe("a")
	s.Unsubscribe("missing")
	got = nil
	s.Settle(s.Raw().Gen)
	if len(got) != 1 || got[0] != "b" {
		t.Errorf("after unsubscribe got %v, want [b]", got)
	}
}
