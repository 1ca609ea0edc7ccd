package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/HSouheill/barrim_admin/models"
	"github.com/HSouheill/barrim_admin/repositories"
)

// fakeFileStore keeps files in memory. PreviewURL fails for ids listed in
// failPreview and waits for delays[id] before answering.
type fakeFileStore struct {
	mu          sync.Mutex
	files       map[string]models.FileMetadata
	deleted     []string
	uploads     int
	failUpload  error
	failPreview map[string]error
	delays      map[string]time.Duration
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{
		files:       map[string]models.FileMetadata{},
		failPreview: map[string]error{},
		delays:      map[string]time.Duration{},
	}
}

func (f *fakeFileStore) Upload(ctx context.Context, name string, body io.Reader, contentType string) (models.FileMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpload != nil {
		return models.FileMetadata{}, f.failUpload
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return models.FileMetadata{}, err
	}
	f.uploads++
	id := fmt.Sprintf("file-%d", f.uploads)
	meta := models.FileMetadata{ID: id, Name: name, Size: int64(len(data)), MimeType: contentType}
	f.files[id] = meta
	return meta, nil
}

func (f *fakeFileStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.files[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.files, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeFileStore) PreviewURL(ctx context.Context, id string) (string, error) {
	f.mu.Lock()
	delay := f.delays[id]
	err := f.failPreview[id]
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return "", err
	}
	return "https://files.test/" + id + "/preview", nil
}

func (f *fakeFileStore) DownloadURL(ctx context.Context, id string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.files[id]; !ok {
		return "", models.ErrNotFound
	}
	return "https://files.test/" + id + "/download", nil
}

func (f *fakeFileStore) Open(ctx context.Context, id string) (io.ReadCloser, models.FileMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	meta, ok := f.files[id]
	if !ok {
		return nil, models.FileMetadata{}, models.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(nil)), meta, nil
}

func (f *fakeFileStore) has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[id]
	return ok
}

// failingStore wraps a DocumentStore and fails the operations listed in
// fail, keyed "op:collection"
type failingStore struct {
	repositories.DocumentStore
	mu   sync.Mutex
	fail map[string]error
}

func newFailingStore(inner repositories.DocumentStore) *failingStore {
	return &failingStore{DocumentStore: inner, fail: map[string]error{}}
}

func (s *failingStore) failOn(op, collection string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[op+":"+collection] = err
}

func (s *failingStore) check(op, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fail[op+":"+collection]
}

func (s *failingStore) List(ctx context.Context, collection string, opts repositories.ListOptions) (*repositories.ListResult, error) {
	if err := s.check("list", collection); err != nil {
		return nil, err
	}
	return s.DocumentStore.List(ctx, collection, opts)
}

func (s *failingStore) Create(ctx context.Context, collection string, doc repositories.Document) (repositories.Document, error) {
	if err := s.check("create", collection); err != nil {
		return nil, err
	}
	return s.DocumentStore.Create(ctx, collection, doc)
}

func (s *failingStore) Update(ctx context.Context, collection, id string, patch repositories.Document) (repositories.Document, error) {
	if err := s.check("update", collection); err != nil {
		return nil, err
	}
	return s.DocumentStore.Update(ctx, collection, id, patch)
}

type publishedEvent struct {
	Type    string
	Message string
	Data    interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(eventType, message string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Message: message, Data: data})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type sentPush struct {
	Topic string
	Title string
	Data  map[string]string
}

type recordingPush struct {
	sent []sentPush
	err  error
}

func (p *recordingPush) SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) error {
	p.sent = append(p.sent, sentPush{Topic: topic, Title: title, Data: data})
	return p.err
}

type recordingMailer struct {
	recipients []string
	subject    string
	err        error
}

func (m *recordingMailer) SendBcc(recipients []string, subject, body string) error {
	m.recipients = recipients
	m.subject = subject
	return m.err
}

func seedDocs(t *testing.T, store repositories.DocumentStore, collection string, docs ...repositories.Document) []string {
	t.Helper()
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		created, err := store.Create(context.Background(), collection, doc)
		require.NoError(t, err)
		ids = append(ids, created.ID())
	}
	return ids
}

func pngImage(t *testing.T) *ImageUpload {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &ImageUpload{Name: "banner.png", Data: buf.Bytes()}
}
