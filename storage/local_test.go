package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HSouheill/barrim_admin/models"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{G: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLocalStore_DirectoryHashing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8080/api/admin/files/")
	require.NoError(t, err)
	ctx := context.Background()

	content := []byte("%PDF-1.4 test content")
	meta, err := store.Upload(ctx, "../utility bill.pdf", bytes.NewReader(content), "application/pdf")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(meta.ID, ".pdf"))
	assert.Equal(t, "utilitybill.pdf", meta.Name)
	assert.EqualValues(t, len(content), meta.Size)
	assert.Equal(t, "http://localhost:8080/api/admin/files/"+meta.ID+"/preview", meta.PreviewURL)

	expected := filepath.Join(store.BaseDir, meta.ID[0:2], meta.ID[2:4], meta.ID)
	_, err = os.Stat(expected)
	require.NoError(t, err, "file not found at hashed path")

	body, opened, err := store.Open(ctx, meta.ID)
	require.NoError(t, err)
	got, err := io.ReadAll(body)
	body.Close()
	require.NoError(t, err)
	assert.Equal(t, content, got)
	assert.Equal(t, "application/pdf", opened.MimeType)
	assert.Equal(t, "utilitybill.pdf", opened.Name)

	url, err := store.DownloadURL(ctx, meta.ID)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/admin/files/"+meta.ID+"/download", url)

	require.NoError(t, store.Delete(ctx, meta.ID))
	_, err = os.Stat(expected)
	assert.True(t, os.IsNotExist(err), "file still exists after deletion")
	_, err = os.Stat(expected + ".meta")
	assert.True(t, os.IsNotExist(err), "metadata still exists after deletion")
}

func TestLocalStore_UnknownFile(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/files")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.PreviewURL(ctx, "deadbeef.png")
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, _, err = store.Open(ctx, "deadbeef.png")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "deadbeef.png"), models.ErrNotFound)

	// path traversal is treated as an unknown id
	_, _, err = store.Open(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestLocalStore_OpenPreviewThumbnail(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/files")
	require.NoError(t, err)
	ctx := context.Background()

	meta, err := store.Upload(ctx, "photo.png", bytes.NewReader(pngBytes(t, 800, 400)), "image/png")
	require.NoError(t, err)

	body, contentType, err := store.OpenPreview(ctx, meta.ID)
	require.NoError(t, err)
	defer body.Close()
	assert.Equal(t, "image/jpeg", contentType)

	thumb, err := imaging.Decode(body)
	require.NoError(t, err)
	assert.Equal(t, previewSize, thumb.Bounds().Dx())
	assert.Equal(t, previewSize/2, thumb.Bounds().Dy())
}

func TestLocalStore_OpenPreviewPassesThroughDocuments(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/files")
	require.NoError(t, err)
	ctx := context.Background()

	meta, err := store.Upload(ctx, "id.pdf", strings.NewReader("%PDF"), "application/pdf")
	require.NoError(t, err)

	body, contentType, err := store.OpenPreview(ctx, meta.ID)
	require.NoError(t, err)
	defer body.Close()
	assert.Equal(t, "application/pdf", contentType)
	got, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(got))
}

func TestValidateImage(t *testing.T) {
	contentType, err := ValidateImage("banner.PNG", pngBytes(t, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	_, err = ValidateImage("banner.svg", []byte("<svg/>"))
	assert.ErrorIs(t, err, models.ErrUnsupportedFile)

	_, err = ValidateImage("banner.png", []byte("text"))
	assert.ErrorIs(t, err, models.ErrUnsupportedFile)

	_, err = ValidateImage("banner.png", make([]byte, MaxImageSize+1))
	assert.ErrorIs(t, err, models.ErrFileTooLarge)
}
