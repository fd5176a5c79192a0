package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"foodgram/internal/logging"
)

const (
	DefaultMaxBytes  = 5 * 1024 * 1024
	DefaultDir       = "./media"
	DefaultURLPrefix = "/media"

	imagesSubdir = "recipes/images"
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store turns data URIs into files under dir, served at urlPrefix.
type Store struct {
	repo      Repository
	dir       string
	urlPrefix string
	maxBytes  int64
}

func NewStore(repo Repository, dir, urlPrefix string, maxBytes int64) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	if urlPrefix == "" {
		urlPrefix = DefaultURLPrefix
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{repo: repo, dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/"), maxBytes: maxBytes}
}

// Save stores raw when it is a data URI and returns the public URL. Any
// other value is treated as an already stored reference and returned as is.
func (s *Store) Save(ctx context.Context, ownerID int64, raw string) (string, error) {
	if !strings.HasPrefix(raw, "data:") {
		return raw, nil
	}

	payload, err := decodeDataURI(raw, s.maxBytes)
	if err != nil {
		return "", err
	}

	// the declared type is ignored, only the sniffed one counts
	mimeType := strings.Split(http.DetectContentType(payload), ";")[0]
	ext, ok := allowedTypes[mimeType]
	if !ok {
		return "", ErrImageType
	}

	absDir := filepath.Join(s.dir, filepath.FromSlash(imagesSubdir))
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fmt.Errorf("create media directory: %w", err)
	}

	id := uuid.New().String()
	name := id + ext
	absPath := filepath.Join(absDir, name)
	if err := os.WriteFile(absPath, payload, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	img := &Image{
		ID:        id,
		OwnerID:   ownerID,
		FilePath:  path.Join(imagesSubdir, name),
		URL:       s.urlPrefix + "/" + path.Join(imagesSubdir, name),
		MimeType:  mimeType,
		Size:      int64(len(payload)),
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, img); err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("save image record: %w", err)
	}

	logging.Ctx(ctx).Debug().Str("image_id", id).Int64("owner_id", ownerID).Int64("size", img.Size).Msg("image stored")
	return img.URL, nil
}

// Remove deletes a stored image by its URL. Unknown URLs are ignored.
func (s *Store) Remove(ctx context.Context, url string) error {
	img, err := s.repo.GetByURL(ctx, url)
	if errors.Is(err, ErrImageNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(img.FilePath))); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove image file: %w", err)
	}
	return s.repo.Delete(ctx, img.ID)
}

func decodeDataURI(raw string, maxBytes int64) ([]byte, error) {
	header, data, ok := strings.Cut(strings.TrimPrefix(raw, "data:"), ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return nil, ErrMalformedImage
	}
	if int64(base64.StdEncoding.DecodedLen(len(data))) > maxBytes+2 {
		return nil, ErrImageTooLarge
	}
	payload, err := base64.StdEncoding.DecodeString(data)
	if err != nil || len(payload) == 0 {
		return nil, ErrMalformedImage
	}
	if int64(len(payload)) > maxBytes {
		return nil, ErrImageTooLarge
	}
	return payload, nil
}
