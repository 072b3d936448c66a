package rules

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherFiresOnEdit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lms.yaml")
	if err := os.WriteFile(path, []byte("match:\n  balls_per_innings: 80\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan string, 1)
	w := NewWatcher(dir, 10*time.Millisecond, func(p string) {
		select {
		case changed <- p:
		default:
		}
	})
	w.Start()
	defer w.Stop()

	// let the watcher prime its mtime cache first
	time.Sleep(50 * time.Millisecond)
	select {
	case p := <-changed:
		t.Fatalf("startup fired a change for %s", p)
	default:
	}

	// a visible mtime bump; coarse filesystem clocks need the future stamp
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		if p != path {
			t.Fatalf("changed path %s, want %s", p, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never reported the edit")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher(dir, 10*time.Millisecond, func(p string) {
		t.Errorf("unexpected change callback for %s", p)
	})
	w.Start()
	defer w.Stop()

	time.Sleep(30 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)
}
