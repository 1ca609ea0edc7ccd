package repositories

import (
	"context"

	"github.com/HSouheill/barrim_admin/models"
)

type BannerRepository struct {
	store DocumentStore
}

func NewBannerRepository(store DocumentStore) *BannerRepository {
	return &BannerRepository{store: store}
}

// Page returns up to limit banners after the banner with id cursor
func (r *BannerRepository) Page(ctx context.Context, cursor string, limit int) ([]models.Banner, error) {
	result, err := r.store.List(ctx, BannersCollection, ListOptions{Limit: limit, CursorAfter: cursor})
	if err != nil {
		return nil, err
	}
	return decodeList[models.Banner](BannersCollection, result.Documents), nil
}

func (r *BannerRepository) Get(ctx context.Context, id string) (models.Banner, error) {
	doc, err := r.store.Get(ctx, BannersCollection, id)
	if err != nil {
		return models.Banner{}, err
	}
	return decodeRecord[models.Banner](doc)
}

func (r *BannerRepository) Create(ctx context.Context, banner models.Banner) (models.Banner, error) {
	doc, err := EncodeDocument(banner)
	if err != nil {
		return models.Banner{}, err
	}
	created, err := r.store.Create(ctx, BannersCollection, doc)
	if err != nil {
		return models.Banner{}, err
	}
	return decodeRecord[models.Banner](created)
}

func (r *BannerRepository) Update(ctx context.Context, id string, patch Document) (models.Banner, error) {
	updated, err := r.store.Update(ctx, BannersCollection, id, patch)
	if err != nil {
		return models.Banner{}, err
	}
	return decodeRecord[models.Banner](updated)
}

func (r *BannerRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, BannersCollection, id)
}
