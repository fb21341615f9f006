// Package watch turns an input directory into a hands-off solve loop:
// dataset files dropped there come out as submission files.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"vodplace/config"
	"vodplace/dataset"
	"vodplace/job"
	"vodplace/pkg/backoff"
	"vodplace/pkg/dir"
	"vodplace/pkg/log"
	"vodplace/pkg/prom"
)

// define dataset and submission file extensions.
const (
	InExt  = ".in"
	OutExt = ".out"
)

// Watcher follows one input directory and solves whatever shows up.
type Watcher struct {
	c      *config.PlacerConfig
	fsw    *fsnotify.Watcher
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.Mutex
	tries map[string]int
}

// New creates the watcher and makes sure both directories exist.
func New(c *config.PlacerConfig) (w *Watcher, err error) {
	if err = dir.MkDirAll(c.InputDir); err != nil {
		return
	}
	if err = dir.MkDirAll(c.OutputDir); err != nil {
		return
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		err = errors.Wrap(err, "new fsnotify watcher")
		return
	}
	if err = fsw.Add(c.InputDir); err != nil {
		_ = fsw.Close()
		err = errors.Wrapf(err, "watch dir %s", c.InputDir)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	w = &Watcher{c: c, fsw: fsw, ctx: ctx, cancel: cancel, tries: make(map[string]int)}
	return
}

// Run solves the files already sitting in the input dir and then
// follows the events until Close is called.
func (w *Watcher) Run() {
	files, err := dir.ScanExt(w.c.InputDir, InExt)
	if err != nil {
		log.Errorf("initial scan of %s error:%v", w.c.InputDir, err)
	}
	for _, f := range files {
		w.solve(f)
	}
	w.wg.Add(1)
	go w.loop()
}

// Close stops the event loop and waits for inflight solves.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.HasSuffix(ev.Name, InExt) {
				continue
			}
			w.solve(ev.Name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Errorf("watch %s error:%v", w.c.InputDir, err)
		}
	}
}

func (w *Watcher) solve(path string) {
	out := w.outPath(path)
	if upToDate(path, out) {
		log.Infof("%s already solved, skip", path)
		return
	}
	p, err := dataset.ParseFile(path)
	if err != nil {
		// the file may still be written, back off and look again
		w.retry(path, err)
		return
	}
	w.forget(path)

	res, err := job.Execute(p, &job.Options{
		Strategy:     w.c.Strategy,
		Refine:       w.c.Refine,
		RefineBudget: time.Duration(w.c.RefineBudget) * time.Millisecond,
		WorkDir:      w.c.WorkDir,
		OutputPath:   out,
	})
	if err != nil {
		prom.ErrIncr(p.Name, "watch", "execute")
		log.Errorf("solve %s error:%v", path, err)
		return
	}
	log.Infof("solved %s with %s: score %d saved %dms -> %s",
		path, res.Strategy, res.Score.Score, res.Score.SavedMs, out)
}

func (w *Watcher) retry(path string, cause error) {
	w.mu.Lock()
	w.tries[path]++
	tries := w.tries[path]
	w.mu.Unlock()
	if tries > w.c.MaxRetries {
		prom.ErrIncr(filepath.Base(path), "watch", "parse")
		log.Errorf("give up on %s after %d retries:%v", path, tries-1, cause)
		w.forget(path)
		return
	}
	delay := backoff.Backoff(tries)
	log.Warnf("parse %s error:%v, retry %d in %v", path, cause, tries, delay)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		select {
		case <-w.ctx.Done():
		case <-time.After(delay):
			w.solve(path)
		}
	}()
}

func (w *Watcher) forget(path string) {
	w.mu.Lock()
	delete(w.tries, path)
	w.mu.Unlock()
}

func (w *Watcher) outPath(in string) string {
	base := strings.TrimSuffix(filepath.Base(in), InExt)
	return filepath.Join(w.c.OutputDir, base+OutExt)
}

// upToDate reports whether the submission file is already newer than
// the dataset file.
func upToDate(in, out string) bool {
	si, err := os.Stat(in)
	if err != nil {
		return false
	}
	so, err := os.Stat(out)
	if err != nil {
		return false
	}
	return !so.ModTime().Before(si.ModTime())
}
