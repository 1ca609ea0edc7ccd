package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/HSouheill/barrim_admin/models"
	"github.com/HSouheill/barrim_admin/repositories"
	"github.com/HSouheill/barrim_admin/storage"
)

const EventGeneralDataChanged = "general_data_changed"

// GeneralDataService manages the single site-wide branding document
type GeneralDataService struct {
	data   *repositories.GeneralDataRepository
	files  storage.FileStore
	events EventPublisher
}

func NewGeneralDataService(data *repositories.GeneralDataRepository, files storage.FileStore, events EventPublisher) *GeneralDataService {
	return &GeneralDataService{data: data, files: files, events: events}
}

// Get returns the general data document, creating it with defaults when the
// store holds none
func (s *GeneralDataService) Get(ctx context.Context) (*models.GeneralDataView, []models.Notice, error) {
	var notices []models.Notice

	data, err := s.data.First(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch general data: %w", err)
	}
	if data == nil {
		created, err := s.data.Create(ctx, models.DefaultGeneralData())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create general data: %w", err)
		}
		data = &created
		notices = append(notices, models.SuccessNotice("Dummy General Data created."))
		logrus.WithField("id", created.ID).Info("Created default general data")
	}

	return s.view(ctx, *data), notices, nil
}

// UpdateImages replaces the images of the given slots. Each new file is
// uploaded before the previous one is deleted; the document is patched
// once all uploads succeeded.
func (s *GeneralDataService) UpdateImages(ctx context.Context, id string, images map[string]*ImageUpload) (*models.GeneralDataView, error) {
	current, err := s.data.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := repositories.Document{}
	var replaced, uploaded []string
	for _, slot := range models.ImageSlots {
		image, ok := images[slot]
		if !ok || image == nil {
			continue
		}
		contentType, err := storage.ValidateImage(image.Name, image.Data)
		if err != nil {
			s.cleanup(ctx, uploaded)
			return nil, fmt.Errorf("%s: %w", slot, err)
		}
		meta, err := s.files.Upload(ctx, image.Name, bytes.NewReader(image.Data), contentType)
		if err != nil {
			s.cleanup(ctx, uploaded)
			return nil, fmt.Errorf("failed to upload %s: %w", slot, err)
		}
		uploaded = append(uploaded, meta.ID)
		patch[slot] = meta.ID
		if old := current.ImageID(slot); old != "" {
			replaced = append(replaced, old)
		}
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: no images provided", models.ErrInvalidInput)
	}

	updated, err := s.data.Update(ctx, id, patch)
	if err != nil {
		s.cleanup(ctx, uploaded)
		return nil, fmt.Errorf("failed to update images: %w", err)
	}
	s.cleanup(ctx, replaced)

	publish(s.events, EventGeneralDataChanged, "Images updated", updated)
	return s.view(ctx, updated), nil
}

// UpdateLinks writes the social links and the terms
func (s *GeneralDataService) UpdateLinks(ctx context.Context, id string, req models.GeneralDataLinksRequest) (*models.GeneralDataView, error) {
	updated, err := s.data.Update(ctx, id, repositories.Document{
		"facebook":  req.Facebook,
		"twitter":   req.Twitter,
		"instagram": req.Instagram,
		"linkedin":  req.Linkedin,
		"terms":     req.Terms,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update general data: %w", err)
	}
	publish(s.events, EventGeneralDataChanged, "General data updated", updated)
	return s.view(ctx, updated), nil
}

func (s *GeneralDataService) cleanup(ctx context.Context, fileIDs []string) {
	for _, id := range fileIDs {
		if err := s.files.Delete(ctx, id); err != nil {
			logrus.WithField("fileId", id).WithError(err).Warn("Failed to delete image")
		}
	}
}

func (s *GeneralDataService) view(ctx context.Context, data models.GeneralData) *models.GeneralDataView {
	v := &models.GeneralDataView{GeneralData: data, ImageURLs: map[string]string{}}
	for _, slot := range models.ImageSlots {
		fileID := data.ImageID(slot)
		if fileID == "" {
			continue
		}
		url, err := s.files.DownloadURL(ctx, fileID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"slot":   slot,
				"fileId": fileID,
			}).WithError(err).Warn("Error getting image URL")
			continue
		}
		v.ImageURLs[slot] = url
	}
	return v
}
