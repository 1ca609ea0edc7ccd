package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/HSouheill/barrim_admin/models"
	"github.com/HSouheill/barrim_admin/services"
	"github.com/HSouheill/barrim_admin/storage"
)

// requestTimeout bounds the store calls made on behalf of one request
const requestTimeout = 10 * time.Second

// maxUploadSize bounds a single multipart file part
const maxUploadSize = 10 << 20

func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// errorStatus maps service errors onto HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrFileTooLarge),
		errors.Is(err, models.ErrUnsupportedFile):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrDuplicateCode):
		return http.StatusConflict
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// respondError writes the error envelope. Client errors carry the error
// text; server errors are only logged.
func respondError(c echo.Context, err error, message string) error {
	status := errorStatus(err)
	resp := models.Response{
		Status:  status,
		Message: message,
		Notices: []models.Notice{models.ErrorNotice(message)},
	}
	if status == http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"path":   c.Request().URL.Path,
			"method": c.Request().Method,
		}).WithError(err).Error(message)
	} else {
		resp.Data = map[string]string{"error": err.Error()}
	}
	return c.JSON(status, resp)
}

// bindAndValidate binds the request body and runs the struct validator.
// When it reports false the error response has already been written.
func bindAndValidate(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
			Data:    err.Error(),
		})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed",
			Data:    err.Error(),
		})
	}
	return true, nil
}

// readImage reads an optional image part of a multipart form. It returns
// nil when the field is absent.
func readImage(c echo.Context, field string) (*services.ImageUpload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	if fileHeader.Size > storage.MaxImageSize {
		return nil, models.ErrFileTooLarge
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, storage.MaxImageSize+1))
	if err != nil {
		return nil, err
	}
	return &services.ImageUpload{Name: fileHeader.Filename, Data: data}, nil
}
