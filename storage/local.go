package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/HSouheill/barrim_admin/models"
)

// previewSize bounds the longest side of a generated preview
const previewSize = 320

// LocalStore keeps files on local disk under a two-level hashed directory
// layout, with a JSON metadata sidecar next to each file
type LocalStore struct {
	BaseDir   string
	PublicURL string
}

// NewLocalStore creates the base directory when missing. publicURL is the
// base the file routes are served from (e.g. http://host/api/admin/files).
func NewLocalStore(baseDir, publicURL string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &LocalStore{BaseDir: baseDir, PublicURL: strings.TrimRight(publicURL, "/")}, nil
}

func (s *LocalStore) path(id string) (string, error) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", fmt.Errorf("%w: file %q", models.ErrNotFound, id)
	}
	if len(id) < 4 {
		return filepath.Join(s.BaseDir, id), nil
	}
	return filepath.Join(s.BaseDir, id[0:2], id[2:4], id), nil
}

func (s *LocalStore) Upload(ctx context.Context, name string, body io.Reader, contentType string) (models.FileMetadata, error) {
	name = CleanFilename(name)
	id := uuid.New().String() + strings.ToLower(filepath.Ext(name))
	fullPath, err := s.path(id)
	if err != nil {
		return models.FileMetadata{}, err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return models.FileMetadata{}, fmt.Errorf("failed to create hashed directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return models.FileMetadata{}, fmt.Errorf("failed to create file: %w", err)
	}
	size, err := io.Copy(file, body)
	file.Close()
	if err != nil {
		os.Remove(fullPath)
		return models.FileMetadata{}, fmt.Errorf("failed to save file content: %w", err)
	}

	meta := models.FileMetadata{ID: id, Name: name, Size: size, MimeType: contentType}
	raw, err := json.Marshal(meta)
	if err != nil {
		os.Remove(fullPath)
		return models.FileMetadata{}, err
	}
	if err := os.WriteFile(fullPath+".meta", raw, 0644); err != nil {
		os.Remove(fullPath)
		return models.FileMetadata{}, fmt.Errorf("failed to save metadata: %w", err)
	}

	meta.PreviewURL = s.url(id, "preview")
	meta.DownloadURL = s.url(id, "download")
	return meta, nil
}

func (s *LocalStore) Delete(ctx context.Context, id string) error {
	fullPath, err := s.path(id)
	if err != nil {
		return err
	}
	os.Remove(fullPath + ".meta")
	os.Remove(fullPath + ".preview")
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: file %s", models.ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *LocalStore) PreviewURL(ctx context.Context, id string) (string, error) {
	if err := s.exists(id); err != nil {
		return "", err
	}
	return s.url(id, "preview"), nil
}

func (s *LocalStore) DownloadURL(ctx context.Context, id string) (string, error) {
	if err := s.exists(id); err != nil {
		return "", err
	}
	return s.url(id, "download"), nil
}

func (s *LocalStore) Open(ctx context.Context, id string) (io.ReadCloser, models.FileMetadata, error) {
	fullPath, err := s.path(id)
	if err != nil {
		return nil, models.FileMetadata{}, err
	}
	f, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, models.FileMetadata{}, fmt.Errorf("%w: file %s", models.ErrNotFound, id)
		}
		return nil, models.FileMetadata{}, err
	}
	return f, s.readMeta(id, fullPath), nil
}

// OpenPreview returns a thumbnail for images, generated on first use and
// kept next to the file. Other files are returned as they are.
func (s *LocalStore) OpenPreview(ctx context.Context, id string) (io.ReadCloser, string, error) {
	fullPath, err := s.path(id)
	if err != nil {
		return nil, "", err
	}
	if err := s.exists(id); err != nil {
		return nil, "", err
	}
	meta := s.readMeta(id, fullPath)
	if !isImageType(meta.MimeType) || meta.MimeType == "image/gif" {
		f, err := os.Open(fullPath)
		if err != nil {
			return nil, "", err
		}
		return f, meta.MimeType, nil
	}

	previewPath := fullPath + ".preview"
	if _, err := os.Stat(previewPath); os.IsNotExist(err) {
		img, err := imaging.Open(fullPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to decode image: %w", err)
		}
		thumb := imaging.Fit(img, previewSize, previewSize, imaging.Lanczos)
		out, err := os.Create(previewPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create preview: %w", err)
		}
		err = imaging.Encode(out, thumb, imaging.JPEG, imaging.JPEGQuality(80))
		out.Close()
		if err != nil {
			os.Remove(previewPath)
			return nil, "", fmt.Errorf("failed to encode preview: %w", err)
		}
	}

	f, err := os.Open(previewPath)
	if err != nil {
		return nil, "", err
	}
	return f, "image/jpeg", nil
}

func (s *LocalStore) exists(id string) error {
	fullPath, err := s.path(id)
	if err != nil {
		return err
	}
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: file %s", models.ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *LocalStore) readMeta(id, fullPath string) models.FileMetadata {
	meta := models.FileMetadata{ID: id, Name: id, MimeType: "application/octet-stream"}
	if raw, err := os.ReadFile(fullPath + ".meta"); err == nil {
		_ = json.Unmarshal(raw, &meta)
	}
	meta.ID = id
	return meta
}

func (s *LocalStore) url(id, kind string) string {
	return fmt.Sprintf("%s/%s/%s", s.PublicURL, id, kind)
}
