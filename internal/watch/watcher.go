// Package watch monitors the capture root and classifies new media files as
// they appear, so a memory card dump gets sorted without rerunning the CLI.
// Only the model phase runs here; month bucketing stays an explicit,
// operator-driven step.
package watch

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"camsort/internal/log"
	"camsort/pkg/types"
)

// Classifier is the slice of the pipeline engine watch mode needs.
type Classifier interface {
	ProcessFile(path string) (types.MoveRecord, bool)
}

// Watcher watches one directory for new files using fsnotify and pushes
// them through a Classifier. Events are handled strictly sequentially.
type Watcher struct {
	dir        string
	classifier Classifier
	settle     time.Duration

	fsWatcher *fsnotify.Watcher
	stopChan  chan struct{}
	doneChan  chan struct{}

	mu      sync.Mutex
	running bool
}

// New creates a watcher over dir. The settle delay gives the producing
// process time to finish writing a file before it is hashed and moved.
func New(dir string, classifier Classifier, settle time.Duration) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{
		dir:        dir,
		classifier: classifier,
		settle:     settle,
		fsWatcher:  fsWatcher,
		stopChan:   make(chan struct{}),
		doneChan:   make(chan struct{}),
	}, nil
}

// Start begins watching. It returns immediately; events are processed in a
// background loop until Stop is called.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	w.running = true

	go w.loop()
	log.WithFields(log.F("directory", w.dir)).Info("watching for new captures")
	return nil
}

func (w *Watcher) loop() {
	defer close(w.doneChan)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.handle(event.Name)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Error("watcher error: %v", err)
		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) handle(path string) {
	if w.settle > 0 {
		time.Sleep(w.settle)
	}
	rec, ok := w.classifier.ProcessFile(path)
	if !ok {
		return
	}
	log.WithFields(
		log.F("file", path),
		log.F("outcome", rec.Outcome),
	).Info("classified new capture")
}

// Stop shuts the watcher down and waits for the event loop to drain.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	w.running = false

	close(w.stopChan)
	w.fsWatcher.Close()
	<-w.doneChan
}
