package storage

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/HSouheill/barrim_admin/models"
)

// MaxImageSize is the largest image accepted for banners and site images
const MaxImageSize = 5 * 1024 * 1024

var allowedImageExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// CleanFilename strips path components and unsafe characters from a name
func CleanFilename(filename string) string {
	name := unsafeChars.ReplaceAllString(filepath.Base(filename), "")
	if name == "" || name == "." {
		return "file"
	}
	return name
}

// ValidateImage checks an uploaded image's extension, size and content and
// returns its content type
func ValidateImage(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowedImageExts[ext]
	if !ok {
		return "", fmt.Errorf("%w: allowed formats are png, jpg, jpeg, gif", models.ErrUnsupportedFile)
	}
	if len(data) > MaxImageSize {
		return "", fmt.Errorf("%w: maximum size is %d bytes", models.ErrFileTooLarge, MaxImageSize)
	}
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("%w: file is not a valid image", models.ErrUnsupportedFile)
	}
	return contentType, nil
}

func isImageType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") && contentType != "image/svg+xml"
}
