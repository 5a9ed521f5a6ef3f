package media

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"swipe-go/pkg/logger"
)

var (
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrEmptyUpload      = errors.New("empty upload")
)

// Store persists uploaded files under relative keys.
type Store interface {
	Save(ctx context.Context, key string, content io.Reader) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Library stores listing images and runs the post-delete hook that removes
// files once the owning rows are gone.
type Library struct {
	store Store
	log   logger.Logger
}

func NewLibrary(store Store, log logger.Logger) *Library {
	return &Library{store: store, log: log}
}

// SaveImage sniffs the content type, stores the file under
// <collection>/<ownerID>/<uuid><ext> and returns its key.
func (l *Library) SaveImage(ctx context.Context, collection string, ownerID int64, content io.Reader) (string, error) {
	reader := bufio.NewReader(content)
	head, err := reader.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if len(head) == 0 {
		return "", ErrEmptyUpload
	}

	contentType := http.DetectContentType(head)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}

	key := path.Join(collection, fmt.Sprintf("%d", ownerID), uuid.NewString()+ext)
	if err := l.store.Save(ctx, key, reader); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return key, nil
}

func (l *Library) URL(key string) string {
	if key == "" {
		return ""
	}
	return l.store.URL(key)
}

// AfterDelete removes stored files for rows that were deleted. It must run
// after the deleting transaction commits. Failures are logged, not returned.
func (l *Library) AfterDelete(ctx context.Context, keys ...string) {
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if err := l.store.Delete(ctx, key); err != nil {
			l.log.InternalError("media: remove file failed", err, "key", key)
			continue
		}
		l.log.Debug("media: file removed", "key", key)
	}
}
