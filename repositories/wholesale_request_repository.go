package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/HSouheill/barrim_admin/models"
)

type WholesaleRequestRepository struct {
	store DocumentStore
}

func NewWholesaleRequestRepository(store DocumentStore) *WholesaleRequestRepository {
	return &WholesaleRequestRepository{store: store}
}

// List returns up to limit requests in store order. Malformed records are
// dropped at this boundary.
func (r *WholesaleRequestRepository) List(ctx context.Context, limit int) ([]models.WholesaleRequest, error) {
	result, err := r.store.List(ctx, WholesaleRequestsCollection, ListOptions{Limit: limit})
	if err != nil {
		return nil, err
	}
	return decodeList[models.WholesaleRequest](WholesaleRequestsCollection, result.Documents), nil
}

func (r *WholesaleRequestRepository) Get(ctx context.Context, id string) (models.WholesaleRequest, error) {
	doc, err := r.store.Get(ctx, WholesaleRequestsCollection, id)
	if err != nil {
		return models.WholesaleRequest{}, err
	}
	return decodeRecord[models.WholesaleRequest](doc)
}

// UpdateStatus writes the status and rejection reason and returns the
// updated request. A malformed stored request is refused before any write.
func (r *WholesaleRequestRepository) UpdateStatus(ctx context.Context, id string, status models.WholesaleStatus, reason string) (models.WholesaleRequest, error) {
	if _, err := r.Get(ctx, id); err != nil {
		if errors.Is(err, models.ErrInvalidRecord) {
			return models.WholesaleRequest{}, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
		}
		return models.WholesaleRequest{}, err
	}

	doc, err := r.store.Update(ctx, WholesaleRequestsCollection, id, Document{
		"status":          string(status),
		"rejectionReason": reason,
	})
	if err != nil {
		return models.WholesaleRequest{}, err
	}
	return decodeRecord[models.WholesaleRequest](doc)
}
