package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/HSouheill/barrim_admin/models"
	"github.com/HSouheill/barrim_admin/storage"
)

// allowedAttachmentExtensions are the non-image documents an applicant may
// attach alongside the image types storage accepts
var allowedAttachmentExtensions = map[string]string{
	".pdf": "application/pdf",
}

// FileController exposes the file store over HTTP
type FileController struct {
	files storage.FileStore
}

func NewFileController(files storage.FileStore) *FileController {
	return &FileController{files: files}
}

// UploadFile stores the "file" part of a multipart form
func (fc *FileController) UploadFile(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return respondError(c, fmt.Errorf("%w: file is required", models.ErrInvalidInput), "Failed to upload file")
	}
	if fileHeader.Size > maxUploadSize {
		return respondError(c, models.ErrFileTooLarge, "Failed to upload file")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err, "Failed to upload file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadSize+1))
	if err != nil {
		return respondError(c, err, "Failed to upload file")
	}
	if len(data) > maxUploadSize {
		return respondError(c, models.ErrFileTooLarge, "Failed to upload file")
	}

	contentType, err := uploadContentType(fileHeader.Filename, data)
	if err != nil {
		return respondError(c, err, "Failed to upload file")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	meta, err := fc.files.Upload(ctx, storage.CleanFilename(fileHeader.Filename), bytes.NewReader(data), contentType)
	if err != nil {
		return respondError(c, err, "Failed to upload file")
	}
	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "File uploaded successfully",
		Data:    meta,
	})
}

func uploadContentType(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if contentType, ok := allowedAttachmentExtensions[ext]; ok {
		if http.DetectContentType(data) != contentType {
			return "", fmt.Errorf("%w: %s does not look like %s", models.ErrUnsupportedFile, filename, contentType)
		}
		return contentType, nil
	}
	if len(data) > storage.MaxImageSize {
		return "", models.ErrFileTooLarge
	}
	return storage.ValidateImage(filename, data)
}

// DownloadFile streams the original file as an attachment
func (fc *FileController) DownloadFile(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	body, meta, err := fc.files.Open(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "File not found")
	}
	defer body.Close()

	name := meta.Name
	if name == "" {
		name = meta.ID
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	contentType := meta.MimeType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Stream(http.StatusOK, contentType, body)
}

// PreviewFile serves an inline preview. Stores that cannot render previews
// redirect to their preview URL instead.
func (fc *FileController) PreviewFile(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	id := c.Param("id")
	previewer, ok := storage.AsPreviewer(fc.files)
	if !ok {
		url, err := fc.files.PreviewURL(ctx, id)
		if err != nil {
			return respondError(c, err, "File not found")
		}
		return c.Redirect(http.StatusFound, url)
	}

	body, contentType, err := previewer.OpenPreview(ctx, id)
	if err != nil {
		return respondError(c, err, "File not found")
	}
	defer body.Close()

	c.Response().Header().Set("Cache-Control", "private, max-age=3600")
	return c.Stream(http.StatusOK, contentType, body)
}

func (fc *FileController) DeleteFile(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	id := c.Param("id")
	if err := fc.files.Delete(ctx, id); err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			logrus.WithField("fileId", id).WithError(err).Error("Failed to delete file")
		}
		return respondError(c, err, "Failed to delete file")
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "File deleted successfully",
	})
}
