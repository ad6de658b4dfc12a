// Package watcher ingests resumes dropped into a local directory.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/logger"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/validator"
)

const defaultDebounce = 500 * time.Millisecond

type ResumeIngester interface {
	Ingest(ctx context.Context, doc entity.Document, candidateID string) (string, error)
}

type FileValidator interface {
	ValidateResumeFile(filename string, size int64) (string, error)
}

// InboxWatcher ingests .pdf and .docx files created or rewritten in dir.
// Bursts of events for the same path collapse into one ingestion after
// the debounce delay. The filename is the candidate id.
type InboxWatcher struct {
	dir       string
	debounce  time.Duration
	ingester  ResumeIngester
	validator FileValidator
	logger    *zap.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
	wg     sync.WaitGroup
}

func NewInboxWatcher(
	dir string,
	debounce time.Duration,
	ingester ResumeIngester,
	validator FileValidator,
	logger *zap.Logger,
) *InboxWatcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &InboxWatcher{
		dir:       dir,
		debounce:  debounce,
		ingester:  ingester,
		validator: validator,
		logger:    logger.With(zap.String("inbox", dir)),
		timers:    make(map[string]*time.Timer),
	}
}

// Run blocks until ctx is done, then waits for pending ingestions.
func (w *InboxWatcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create inbox dir: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	w.logger.Info("resume inbox watcher started")

	for {
		select {
		case <-ctx.Done():
			w.drain()
			w.logger.Info("resume inbox watcher stopped")
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				w.drain()
				return nil
			}
			if !isResumeFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				w.schedule(ctx, event.Name)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				w.drain()
				return nil
			}
			w.logger.Warn("inbox watcher error", zap.Error(err))
		}
	}
}

func (w *InboxWatcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok && t.Stop() {
		w.wg.Done()
	}

	w.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()

		w.mu.Lock()
		if w.timers[path] == t {
			delete(w.timers, path)
		}
		w.mu.Unlock()

		if err := w.ingestFile(ctx, path); err != nil {
			w.logger.Warn("inbox resume not ingested",
				zap.String("path", path),
				zap.Error(err),
			)
		}
	})
	w.timers[path] = t
}

// drain cancels pending timers and waits for running ingestions.
func (w *InboxWatcher) drain() {
	w.mu.Lock()
	for path, t := range w.timers {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.timers, path)
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *InboxWatcher) ingestFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	if info.IsDir() {
		return nil
	}

	filename := validator.SanitizeFilename(info.Name())
	mediaType, err := w.validator.ValidateResumeFile(filename, info.Size())
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	ctx = logger.WithAction(ctx, "inbox_ingest")
	id, err := w.ingester.Ingest(ctx, entity.Document{
		Filename:  filename,
		MediaType: mediaType,
		Content:   content,
	}, "")
	if err != nil {
		return err
	}

	w.logger.Info("inbox resume ingested",
		zap.String("path", path),
		zap.String("candidate_id", id),
	)
	return nil
}

func isResumeFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	_, ok := validator.ResumeExtensions[strings.ToLower(filepath.Ext(base))]
	return ok
}
