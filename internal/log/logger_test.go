package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestMemoryLoggerNumbersEvents(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewTurnEvent(1, 0))
	l.Log(NewDrawEvent(1, "Draw", 0, "Pikachu"))
	l.Log(NewDrawEvent(1, "Draw", 1, "Squirtle"))

	if got := len(l.Events()); got != 3 {
		t.Fatalf("expected 3 events, got %d", got)
	}
	for i, e := range l.Events() {
		if e.Seq != i+1 {
			t.Errorf("event %d: expected seq %d, got %d", i, i+1, e.Seq)
		}
	}
	if got := len(l.EventsOfType(EventDraw)); got != 2 {
		t.Errorf("expected 2 draw events, got %d", got)
	}
	if last := l.LastEvent(); last.Card != "Squirtle" {
		t.Errorf("expected last card Squirtle, got %q", last.Card)
	}
}

func TestLastEventEmpty(t *testing.T) {
	if e := NewMemoryLogger().LastEvent(); e.Type != 0 || e.Seq != 0 {
		t.Errorf("expected zero event, got %+v", e)
	}
}

func TestTextLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewWinEvent(7, "Attack", 1, "took 3 points"))

	out := buf.String()
	if !strings.HasPrefix(out, "T7 ") {
		t.Errorf("expected turn prefix, got %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("expected trailing newline, got %q", out)
	}
	if len(l.Events()) != 1 {
		t.Errorf("text logger should also keep events in memory")
	}
	if got := FormatAll(l.Events()); got != out {
		t.Errorf("FormatAll mismatch:\n%q\n%q", got, out)
	}
}

func TestPlayerName(t *testing.T) {
	if PlayerName(0) != "P1" || PlayerName(1) != "P2" {
		t.Errorf("unexpected names %q %q", PlayerName(0), PlayerName(1))
	}
}
