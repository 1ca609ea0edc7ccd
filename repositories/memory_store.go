package repositories

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HSouheill/barrim_admin/models"
)

// MemoryStore is an in-process DocumentStore used for local runs and tests
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]Document)}
}

func (s *MemoryStore) List(ctx context.Context, collection string, opts ListOptions) (*ListResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Document
	for _, doc := range s.collections[collection] {
		if matchesAll(doc, opts.Filters) {
			matched = append(matched, doc)
		}
	}

	window := matched
	if opts.CursorAfter != "" {
		found := false
		for i, doc := range matched {
			if doc.ID() == opts.CursorAfter {
				window = matched[i+1:]
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: cursor %s", models.ErrNotFound, opts.CursorAfter)
		}
	}
	if opts.Offset > 0 {
		if opts.Offset >= len(window) {
			window = nil
		} else {
			window = window[opts.Offset:]
		}
	}
	if opts.Limit > 0 && len(window) > opts.Limit {
		window = window[:opts.Limit]
	}

	docs := make([]Document, 0, len(window))
	for _, doc := range window {
		docs = append(docs, cloneDocument(doc))
	}
	return &ListResult{Documents: docs, Total: int64(len(matched))}, nil
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(collection, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s/%s", models.ErrNotFound, collection, id)
	}
	return cloneDocument(s.collections[collection][i]), nil
}

func (s *MemoryStore) Create(ctx context.Context, collection string, doc Document) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneDocument(doc)
	id := stored.ID()
	if id == "" {
		id = primitive.NewObjectID().Hex()
	} else if s.indexOf(collection, id) >= 0 {
		return nil, fmt.Errorf("document %s/%s already exists", collection, id)
	}
	stored["id"] = id
	s.collections[collection] = append(s.collections[collection], stored)
	return cloneDocument(stored), nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, patch Document) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(collection, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s/%s", models.ErrNotFound, collection, id)
	}
	stored := s.collections[collection][i]
	for k, v := range patch {
		if k == "id" {
			continue
		}
		stored[k] = v
	}
	return cloneDocument(stored), nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(collection, id)
	if i < 0 {
		return fmt.Errorf("%w: %s/%s", models.ErrNotFound, collection, id)
	}
	docs := s.collections[collection]
	s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
	return nil
}

// indexOf must be called with the lock held
func (s *MemoryStore) indexOf(collection, id string) int {
	for i, doc := range s.collections[collection] {
		if doc.ID() == id {
			return i
		}
	}
	return -1
}

func matchesAll(doc Document, filters []Filter) bool {
	for _, f := range filters {
		if !matches(doc[f.Field], f.Values) {
			return false
		}
	}
	return true
}

func matches(field interface{}, values []interface{}) bool {
	for _, v := range values {
		if valuesEqual(field, v) {
			return true
		}
	}
	return false
}

func valuesEqual(a, b interface{}) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func cloneDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
