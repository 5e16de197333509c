package conflict

import (
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Iron-Ham/cohort/internal/registry"
)

// debounceWindow collects bursts of filesystem events before re-reading the
// registry; editors and atomic renames produce several events per write.
const debounceWindow = 50 * time.Millisecond

// Watcher re-runs conflict detection whenever session records change on
// disk. It is a convenience for long-lived consumers (the dashboard); CLI
// invocations call Detect directly against a fresh snapshot.
type Watcher struct {
	watcher  *fsnotify.Watcher
	reg      *registry.Registry
	onChange func([]FileConflict)

	mu     sync.RWMutex
	latest []FileConflict
	stopCh chan struct{}
	once   sync.Once
}

// NewWatcher creates a Watcher over the registry's sessions directory.
// onChange is invoked with the freshly detected conflicts after every
// debounced batch of record changes; it may be nil.
func NewWatcher(reg *registry.Registry, onChange func([]FileConflict)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		reg:      reg,
		onChange: onChange,
		stopCh:   make(chan struct{}),
	}

	// Watching requires the sessions directory to exist, even on a fresh
	// workspace where no session has been registered yet.
	if err := os.MkdirAll(reg.SessionsDir(), 0755); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	if err := fsw.Add(reg.SessionsDir()); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return w, nil
}

// Start begins watching for record changes.
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop stops the watcher and releases its resources.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.stopCh)
		_ = w.watcher.Close()
	})
}

// Conflicts returns the most recently detected conflicts.
func (w *Watcher) Conflicts() []FileConflict {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]FileConflict, len(w.latest))
	copy(out, w.latest)
	return out
}

// Refresh re-reads the registry and recomputes conflicts immediately.
func (w *Watcher) Refresh() ([]FileConflict, error) {
	sessions, err := w.reg.List()
	if err != nil {
		return nil, err
	}
	conflicts := Detect(sessions)

	w.mu.Lock()
	w.latest = conflicts
	w.mu.Unlock()

	return conflicts, nil
}

func (w *Watcher) watchLoop() {
	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer

	pending := false

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// Writes, renames (atomic record replacement), and removals
			// (session close) all change the snapshot.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			pending = true
			debounce.Reset(debounceWindow)

		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false

			conflicts, err := w.Refresh()
			if err != nil {
				continue // transient read races resolve on the next event
			}
			if w.onChange != nil {
				w.onChange(conflicts)
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
