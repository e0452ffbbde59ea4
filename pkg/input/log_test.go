package input

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogRoundTrip(t *testing.T) {
	rec := NewRecorder(nil)
	rec.Record(true)
	rec.LeftDown()
	rec.MoveTo(-3, 7)
	rec.Scroll(240, 120, Vertical)
	rec.RightUp()
	rec.Record(false)

	var buf bytes.Buffer
	if err := rec.Save(&buf); err != nil {
		t.Fatalf("failed to save log: %v", err)
	}

	loaded := NewRecorder(nil)
	if err := loaded.Load(&buf); err != nil {
		t.Fatalf("failed to load log: %v", err)
	}

	want := rec.Events()
	got := loaded.Events()
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d failed: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestLoadStopsAtBadRecord(t *testing.T) {
	tests := []struct {
		name  string
		input string
		count int
	}{
		{"empty", "", 0},
		{"short record", "6 10\n", 0},
		{"non numeric kind", "x 0 0\n", 0},
		{"trailing short record", "2 0 0\n6 10 20\n5 1\n", 2},
		{"trailing garbage", "2 0 0\ngarbage line\n6 10 20\n", 1},
		{"kind out of range", "2 0 0\n9 1 2\n", 1},
		{"blank line ends log", "4 0 0\n\n2 0 0\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecorder(nil)
			if err := rec.Load(strings.NewReader(tt.input)); err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if got := len(rec.Events()); got != tt.count {
				t.Errorf("expected %d events, got %d", tt.count, got)
			}
		})
	}
}

func TestLoadReplacesPreviousLog(t *testing.T) {
	rec := NewRecorder(nil)
	rec.Record(true)
	rec.LeftDown()
	rec.LeftUp()
	rec.Record(false)

	if err := rec.Load(strings.NewReader("6 1 2\n")); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	events := rec.Events()
	if len(events) != 1 {
		t.Fatalf("expected the loaded log to replace the old one, have %d events", len(events))
	}
	if events[0] != (Event{Kind: Move, A: 1, B: 2}) {
		t.Errorf("unexpected event %v", events[0])
	}
}

func TestSaveLogLoadLogHeader(t *testing.T) {
	rec := NewRecorder(nil)
	rec.Record(true)
	rec.MoveTo(10, 20)
	rec.DoubleClick()
	rec.Record(false)

	var buf bytes.Buffer
	if err := SaveLog(&buf, "parts/bracket.stl", rec); err != nil {
		t.Fatalf("failed to write log: %v", err)
	}

	loaded := NewRecorder(nil)
	model, err := LoadLog(&buf, loaded)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if model != "parts/bracket.stl" {
		t.Errorf("model header failed: expected %q, got %q", "parts/bracket.stl", model)
	}
	if got := len(loaded.Events()); got != 2 {
		t.Errorf("expected 2 events after load, got %d", got)
	}
}

func TestLoadLogMissingHeader(t *testing.T) {
	rec := NewRecorder(nil)
	if _, err := LoadLog(strings.NewReader(""), rec); err == nil {
		t.Error("expected an error for a log without a model header")
	}
}
