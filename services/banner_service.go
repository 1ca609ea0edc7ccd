package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/HSouheill/barrim_admin/models"
	"github.com/HSouheill/barrim_admin/repositories"
	"github.com/HSouheill/barrim_admin/storage"
)

// DefaultBannerPageSize is the page size when none is requested
const DefaultBannerPageSize = 100

const EventBannersChanged = "banners_changed"

// ImageUpload is an uploaded image held in memory for validation
type ImageUpload struct {
	Name string
	Data []byte
}

// BannerService manages storefront banners and their images
type BannerService struct {
	banners *repositories.BannerRepository
	files   storage.FileStore
	events  EventPublisher
}

func NewBannerService(banners *repositories.BannerRepository, files storage.FileStore, events EventPublisher) *BannerService {
	return &BannerService{banners: banners, files: files, events: events}
}

// List returns the page of banners after cursor. HasMore stays true while
// full pages come back.
func (s *BannerService) List(ctx context.Context, cursor string, limit int) (*models.BannerPage, error) {
	if limit <= 0 {
		limit = DefaultBannerPageSize
	}
	banners, err := s.banners.Page(ctx, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch banners: %w", err)
	}

	page := &models.BannerPage{
		Banners: make([]models.BannerView, 0, len(banners)),
		HasMore: len(banners) >= limit,
	}
	for _, banner := range banners {
		page.Banners = append(page.Banners, s.view(ctx, banner))
	}
	if len(banners) > 0 {
		page.NextCursor = banners[len(banners)-1].ID
	}
	return page, nil
}

func (s *BannerService) Get(ctx context.Context, id string) (models.BannerView, error) {
	banner, err := s.banners.Get(ctx, id)
	if err != nil {
		return models.BannerView{}, err
	}
	return s.view(ctx, banner), nil
}

// Create uploads the image, then creates the banner. The upload is removed
// again when the banner cannot be created.
func (s *BannerService) Create(ctx context.Context, req models.BannerRequest, image *ImageUpload) (models.BannerView, error) {
	if err := validateBannerRequest(&req); err != nil {
		return models.BannerView{}, err
	}
	if image == nil {
		return models.BannerView{}, fmt.Errorf("%w: please select an image", models.ErrInvalidInput)
	}

	meta, err := s.uploadImage(ctx, image)
	if err != nil {
		return models.BannerView{}, err
	}

	banner, err := s.banners.Create(ctx, models.Banner{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		ImageID:  meta.ID,
	})
	if err != nil {
		s.deleteFile(ctx, meta.ID)
		return models.BannerView{}, fmt.Errorf("failed to add banner: %w", err)
	}

	publish(s.events, EventBannersChanged, "Banner added", banner)
	return s.view(ctx, banner), nil
}

// Update changes the texts and, when image is set, replaces the image. The
// previous image is deleted once the banner points at the new one.
func (s *BannerService) Update(ctx context.Context, id string, req models.BannerRequest, image *ImageUpload) (models.BannerView, error) {
	if err := validateBannerRequest(&req); err != nil {
		return models.BannerView{}, err
	}
	current, err := s.banners.Get(ctx, id)
	if err != nil {
		return models.BannerView{}, err
	}

	patch := repositories.Document{"title": req.Title, "subtitle": req.Subtitle}
	newImageID := ""
	if image != nil {
		meta, err := s.uploadImage(ctx, image)
		if err != nil {
			return models.BannerView{}, err
		}
		newImageID = meta.ID
		patch["imageId"] = newImageID
	}

	banner, err := s.banners.Update(ctx, id, patch)
	if err != nil {
		if newImageID != "" {
			s.deleteFile(ctx, newImageID)
		}
		return models.BannerView{}, fmt.Errorf("failed to update banner: %w", err)
	}
	if newImageID != "" && current.ImageID != "" {
		s.deleteFile(ctx, current.ImageID)
	}

	publish(s.events, EventBannersChanged, "Banner updated", banner)
	return s.view(ctx, banner), nil
}

// Delete removes the banner's image, then the banner
func (s *BannerService) Delete(ctx context.Context, id string) error {
	banner, err := s.banners.Get(ctx, id)
	if err != nil {
		return err
	}
	if banner.ImageID != "" {
		if err := s.files.Delete(ctx, banner.ImageID); err != nil && !errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("failed to delete banner image: %w", err)
		}
	}
	if err := s.banners.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	publish(s.events, EventBannersChanged, "Banner deleted", map[string]string{"id": id})
	return nil
}

func (s *BannerService) uploadImage(ctx context.Context, image *ImageUpload) (models.FileMetadata, error) {
	contentType, err := storage.ValidateImage(image.Name, image.Data)
	if err != nil {
		return models.FileMetadata{}, err
	}
	meta, err := s.files.Upload(ctx, image.Name, bytes.NewReader(image.Data), contentType)
	if err != nil {
		return models.FileMetadata{}, fmt.Errorf("failed to upload image: %w", err)
	}
	return meta, nil
}

func (s *BannerService) deleteFile(ctx context.Context, id string) {
	if err := s.files.Delete(ctx, id); err != nil {
		logrus.WithField("fileId", id).WithError(err).Warn("Failed to delete banner image")
	}
}

func (s *BannerService) view(ctx context.Context, banner models.Banner) models.BannerView {
	v := models.BannerView{Banner: banner}
	if banner.ImageID == "" {
		return v
	}
	url, err := s.files.PreviewURL(ctx, banner.ImageID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"bannerId": banner.ID,
			"imageId":  banner.ImageID,
		}).WithError(err).Warn("Error getting banner preview")
		return v
	}
	v.ImageURL = url
	return v
}

func validateBannerRequest(req *models.BannerRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Subtitle = strings.TrimSpace(req.Subtitle)
	if req.Title == "" {
		return fmt.Errorf("%w: please enter a title", models.ErrInvalidInput)
	}
	if req.Subtitle == "" {
		return fmt.Errorf("%w: please enter a subtitle", models.ErrInvalidInput)
	}
	return nil
}
