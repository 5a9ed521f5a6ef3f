package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"swipe-go/pkg/logger"
)

type memoryStore struct {
	files   map[string][]byte
	deleted []string
	failOn  string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{files: make(map[string][]byte)}
}

func (s *memoryStore) Save(ctx context.Context, key string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	s.files[key] = data
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	if key == s.failOn {
		return errors.New("disk error")
	}
	delete(s.files, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *memoryStore) URL(key string) string {
	return "/media/" + key
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

func TestSaveImageStoresWholeFile(t *testing.T) {
	store := newMemoryStore()
	library := NewLibrary(store, logger.Discard())

	payload := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{1}, 2048)...)
	key, err := library.SaveImage(context.Background(), "houses", 7, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(key, "houses/7/") || !strings.HasSuffix(key, ".png") {
		t.Fatalf("unexpected key %q", key)
	}
	if got := len(store.files[key]); got != len(payload) {
		t.Fatalf("stored %d bytes, want %d", got, len(payload))
	}
	if library.URL(key) != "/media/"+key {
		t.Fatalf("unexpected url %q", library.URL(key))
	}
}

func TestSaveImageRejectsNonImages(t *testing.T) {
	library := NewLibrary(newMemoryStore(), logger.Discard())

	_, err := library.SaveImage(context.Background(), "houses", 1, strings.NewReader("plain text"))
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
	_, err = library.SaveImage(context.Background(), "houses", 1, strings.NewReader(""))
	if !errors.Is(err, ErrEmptyUpload) {
		t.Fatalf("expected ErrEmptyUpload, got %v", err)
	}
}

func TestAfterDeleteContinuesPastFailures(t *testing.T) {
	store := newMemoryStore()
	store.files["a"] = []byte("1")
	store.files["b"] = []byte("2")
	store.failOn = "a"
	library := NewLibrary(store, logger.Discard())

	library.AfterDelete(context.Background(), "a", "", "b")

	if len(store.deleted) != 1 || store.deleted[0] != "b" {
		t.Fatalf("unexpected deletions %v", store.deleted)
	}
}
