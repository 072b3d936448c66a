package rules

import (
	"os"
	"path/filepath"
	"time"
)

// Watcher polls the rules directory for modified YAML files and triggers
// a callback on change, typically Loader.Invalidate. Plain mtime polling;
// rule edits are rare and a short interval is plenty.
type Watcher struct {
	baseDir  string
	interval time.Duration
	onChange func(string) // called with the path that changed

	stopCh    chan struct{}
	lastMTime map[string]time.Time
}

func NewWatcher(baseDir string, interval time.Duration, onChange func(string)) *Watcher {
	return &Watcher{
		baseDir:   baseDir,
		interval:  interval,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// Start begins polling in a goroutine.
func (w *Watcher) Start() {
	ticker := time.NewTicker(w.interval)
	go func() {
		defer ticker.Stop()
		// prime the mtime cache so startup does not fire callbacks
		w.scan(true)
		for {
			select {
			case <-ticker.C:
				w.scan(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

func (w *Watcher) Stop() {
	close(w.stopCh)
}

func (w *Watcher) scan(prime bool) {
	_ = filepath.WalkDir(w.baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		mt := fi.ModTime()
		last, seen := w.lastMTime[path]
		w.lastMTime[path] = mt
		if seen && mt.After(last) && !prime && w.onChange != nil {
			w.onChange(path)
		}
		return nil
	})
}
