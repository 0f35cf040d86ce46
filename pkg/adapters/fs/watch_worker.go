package fs

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"slices"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/aretw0/lifecycle/pkg/core/supervisor"
	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/strata/pkg/core"
)

// Inferer runs the inference pipeline over a tree.
type Inferer interface {
	Infer(ctx context.Context, root core.Node) (*core.Result, error)
}

type watchWorker struct {
	*worker.BaseWorker
	tree    *Tree
	svc     Inferer
	events  chan<- core.RefreshEvent
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
}

func newWatchWorker(tree *Tree, svc Inferer, events chan<- core.RefreshEvent) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("fs-watcher"),
		tree:       tree,
		svc:        svc,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.tree.recursiveAdd(watcher, "."); err != nil {
		_ = watcher.Close()
		return err
	}

	w.watcher = watcher
	w.tree.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// recursiveAdd registers every non-excluded directory below rel.
func (t *Tree) recursiveAdd(watcher *fsnotify.Watcher, rel string) error {
	return fs.WalkDir(t.fsys, rel, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if t.Excluded(p) {
			return fs.SkipDir
		}
		if err := watcher.Add(filepath.Join(t.Path, filepath.FromSlash(p))); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

// relevant reports whether an event can change the inferred schema: content
// files, and directories that may hold them.
func (w *watchWorker) relevant(event fsnotify.Event) bool {
	rel, err := filepath.Rel(w.tree.Path, event.Name)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if w.tree.Excluded(rel) {
		return false
	}
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}
	ext := filepath.Ext(rel)
	if slices.Contains(w.tree.config.Extensions, ext) {
		return true
	}
	// Removing or renaming a folder drops the documents it held.
	if ext == "" && (event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
		return true
	}
	if event.Has(fsnotify.Create) {
		if info, err := fs.Stat(w.tree.fsys, rel); err == nil && info.IsDir() {
			if err := w.tree.recursiveAdd(w.watcher, rel); err != nil {
				w.handleWatcherError(err)
			}
			return true
		}
	}
	return false
}

// refresh re-runs the whole pipeline. The previous result is discarded.
func (w *watchWorker) refresh(ctx context.Context, trigger string) {
	ev := core.RefreshEvent{Trigger: trigger, Timestamp: time.Now().Unix()}
	root, err := w.tree.Root(ctx)
	if err == nil {
		ev.Result, err = w.svc.Infer(ctx, root)
	}
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		ev.Err = err
		w.handleWatcherError(fmt.Errorf("refresh failed: %w", err))
	}
	w.tree.recordRefresh()
	w.sendEvent(ctx, ev)
}

// sendEvent delivers an event, protecting against channel closure during shutdown.
func (w *watchWorker) sendEvent(ctx context.Context, event core.RefreshEvent) {
	defer func() {
		_ = recover()
	}()
	select {
	case w.events <- event:
	case <-ctx.Done():
	}
}

// handleWatcherError logs and forwards errors from the watcher.
func (w *watchWorker) handleWatcherError(err error) {
	w.tree.config.Logger.Error("watch error", "error", err)
	if w.tree.config.ErrorHandler != nil {
		w.tree.config.ErrorHandler(err)
	}
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)
			if w.tree.config.Logger.Enabled(ctx, slog.LevelDebug) {
				w.tree.config.Logger.Error("watcher panic", "error", panicErr, "stack", string(debug.Stack()))
			} else {
				w.tree.config.Logger.Error("watcher panic", "error", panicErr)
			}
			err = panicErr
		}
	}()
	defer w.tree.setWatcherActive(false)
	defer w.watcher.Close()

	w.refresh(ctx, "initial")
	return w.mainEventLoop(ctx)
}

// mainEventLoop collects filesystem events and refreshes once they settle.
func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.tree.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())
			if !w.relevant(event) {
				continue
			}
			pending = true
			timer.Reset(w.tree.config.Debounce)

		case <-timer.C:
			if pending {
				pending = false
				w.refresh(ctx, "filesystem")
			}

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleWatcherError(wErr)
		}
	}
}

// Watch re-infers the tree with svc every time its content changes and
// streams one RefreshEvent per run, starting with an initial run. The
// watcher is supervised and restarted on failure. The channel is closed
// once ctx is done and the watcher has stopped.
func (t *Tree) Watch(ctx context.Context, svc Inferer) (<-chan core.RefreshEvent, error) {
	events := make(chan core.RefreshEvent, t.config.EventBuffer)

	spec := supervisor.Spec{
		Name: "fs-watcher",
		Type: string(worker.TypeGoroutine),
		Factory: func() (worker.Worker, error) {
			return newWatchWorker(t, svc, events), nil
		},
		Backoff: supervisor.Backoff{
			InitialInterval: 100 * time.Millisecond,
			MaxInterval:     5 * time.Second,
			Multiplier:      2,
			ResetDuration:   time.Minute,
			MaxRestarts:     5,
			MaxDuration:     10 * time.Minute,
		},
		RestartPolicy: supervisor.RestartOnFailure,
	}

	sup := supervisor.New("strata-watch", supervisor.StrategyOneForOne, spec)
	if err := sup.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start watcher: %w", err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := sup.Stop(stopCtx)
		close(events)
		return err
	}, lifecycle.WithErrorHandler(func(err error) {
		t.config.Logger.Error("watcher shutdown failed", "error", err)
	}))

	return events, nil
}
