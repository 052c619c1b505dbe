package game

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestParseLevels(t *testing.T) {
	levels, err := ParseLevels([]byte(`[{"targetScore":100,"maxMoves":5},{"targetScore":250,"maxMoves":7}]`))
	if err != nil {
		t.Fatalf("ParseLevels returned error: %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(levels))
	}
	if levels[1].Index != 1 || levels[1].TargetScore != 250 || levels[1].MaxMoves != 7 {
		t.Fatalf("unexpected level: %+v", levels[1])
	}
}

func TestParseLevelsRejectsBadInput(t *testing.T) {
	if _, err := ParseLevels([]byte(`[]`)); !errors.Is(err, ErrNoLevels) {
		t.Fatalf("expected ErrNoLevels, got %v", err)
	}
	if _, err := ParseLevels([]byte(`{`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if _, err := ParseLevels([]byte(`[{"targetScore":0,"maxMoves":3}]`)); !errors.Is(err, ErrBadLevel) {
		t.Fatalf("expected ErrBadLevel for zero target, got %v", err)
	}
}

func TestLoadLevelsEmbedded(t *testing.T) {
	levels, err := LoadLevels("")
	if err != nil {
		t.Fatalf("LoadLevels returned error: %v", err)
	}
	if len(levels) == 0 {
		t.Fatal("embedded ladder is empty")
	}
	for i, l := range levels {
		if l.Index != i {
			t.Fatalf("level %d has index %d", i, l.Index)
		}
	}
}

func TestLoadLevelsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels.json")
	if err := os.WriteFile(path, []byte(`[{"targetScore":42,"maxMoves":2}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	levels, err := LoadLevels(path)
	if err != nil {
		t.Fatalf("LoadLevels returned error: %v", err)
	}
	if levels[0].TargetScore != 42 {
		t.Fatalf("unexpected level: %+v", levels[0])
	}
	if _, err := LoadLevels(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestTimerSchedulerRunsUnderLock(t *testing.T) {
	var mu sync.Mutex
	done := make(chan bool, 1)
	TimerScheduler{L: &mu}.After(time.Millisecond, func() {
		// TryLock fails while the scheduler holds mu.
		done <- !mu.TryLock()
	})
	select {
	case held := <-done:
		if !held {
			t.Fatal("continuation ran without holding the lock")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("continuation never fired")
	}
}
