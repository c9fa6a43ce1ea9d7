package input

import (
	"log"
	"time"

	"github.com/fsnotify/fsnotify"
)

// A Watcher observes the source folder and invokes a reload callback
// when its contents settle after a change. Editors and exporters tend
// to write sequences in bursts, so events are debounced into a single
// reload.
type Watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}
}

// Watch starts observing dir. The reload callback runs on the
// watcher's goroutine once no event has arrived for the debounce
// window.
func Watch(dir string, debounce time.Duration, reload func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{fsw: fsw, done: make(chan struct{})}
	go w.run(debounce, reload)
	return w, nil
}

func (w *Watcher) run(debounce time.Duration, reload func()) {
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(debounce)
			pending = true
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("input: watch error: %v", err)
		case <-timer.C:
			pending = false
			reload()
		case <-w.done:
			return
		}
	}
}

// relevant reports whether an event can change the loaded sequence.
func relevant(ev fsnotify.Event) bool {
	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
