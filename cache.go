package dataformat

import (
	"bytes"

	"github.com/thrustcurve/dataformat/internal/sync"
)

// Document is a rendered document ready to be sent again.
type Document struct {
	ContentType string
	Body        []byte
}

// ResponseCache memoizes rendered documents that only depend on the catalog,
// which does not change while the server runs. It is safe for concurrent use.
type ResponseCache struct {
	mu      sync.RWMutex
	entries map[string]Document
}

func NewResponseCache() *ResponseCache {
	return &ResponseCache{entries: map[string]Document{}}
}

func (rc *ResponseCache) memoKey(args ...string) string {
	var b bytes.Buffer
	for i, a := range args {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(a)
	}
	return b.String()
}

// Get returns the document stored under key.
func (rc *ResponseCache) Get(key string) (Document, bool) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	doc, ok := rc.entries[key]
	return doc, ok
}

// GetOrRender returns the cached document for key, rendering and storing it
// on a miss. A render error is returned and nothing is stored.
func (rc *ResponseCache) GetOrRender(key string, render func() (Document, error)) (Document, bool, error) {
	if doc, ok := rc.Get(key); ok {
		return doc, true, nil
	}
	doc, err := render()
	if err != nil {
		return Document{}, false, err
	}
	rc.mu.Lock()
	rc.entries[key] = doc
	rc.mu.Unlock()
	return doc, false, nil
}

// Len returns the number of cached documents.
func (rc *ResponseCache) Len() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.entries)
}
