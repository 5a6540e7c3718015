// Package loader reads the official schedule document from disk and
// serves it through a process-wide lazy cache.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/oti-labs/studify-api/internal/models"
)

// FileLoader reads the schedule document from a fixed path. Unknown JSON
// fields are ignored so upstream format additions never break loading.
type FileLoader struct {
	path string
}

// NewFileLoader returns a loader for the given document path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

// Load reads and decodes the schedule document.
func (l *FileLoader) Load(ctx context.Context) (*models.ScheduleDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read schedule document %s: %w", l.path, err)
	}
	var doc models.ScheduleDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode schedule document %s: %w", l.path, err)
	}
	return &doc, nil
}

// Loader abstracts where the raw document comes from.
type Loader interface {
	Load(ctx context.Context) (*models.ScheduleDocument, error)
}

// DocumentCache serves the parsed document to many concurrent readers
// while loading it at most once. It is an explicit injectable object
// owned by the composition root, not ambient global state. A failed load
// is not cached; the next caller retries.
type DocumentCache struct {
	loader Loader

	mu  sync.Mutex
	doc *models.ScheduleDocument
}

// NewDocumentCache wraps a loader with load-once semantics.
func NewDocumentCache(loader Loader) *DocumentCache {
	return &DocumentCache{loader: loader}
}

// Get returns the cached document, loading it on first use. Concurrent
// callers during the initial load serialise on the cache lock; the result
// is idempotent so double-checking under the lock is sufficient.
func (c *DocumentCache) Get(ctx context.Context) (*models.ScheduleDocument, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc != nil {
		return c.doc, nil
	}
	doc, err := c.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.doc = doc
	return c.doc, nil
}

// Invalidate drops the cached document so the next Get reloads it.
func (c *DocumentCache) Invalidate() {
	c.mu.Lock()
	c.doc = nil
	c.mu.Unlock()
}
