package repositories

import (
	"context"

	"github.com/HSouheill/barrim_admin/models"
)

type SubscriberRepository struct {
	store DocumentStore
}

func NewSubscriberRepository(store DocumentStore) *SubscriberRepository {
	return &SubscriberRepository{store: store}
}

// Page returns one offset page of subscribers and the raw page length, which
// callers use to detect the last page
func (r *SubscriberRepository) Page(ctx context.Context, offset, limit int) ([]models.Subscriber, int, error) {
	result, err := r.store.List(ctx, SubscribersCollection, ListOptions{Offset: offset, Limit: limit})
	if err != nil {
		return nil, 0, err
	}
	return decodeList[models.Subscriber](SubscribersCollection, result.Documents), len(result.Documents), nil
}

func (r *SubscriberRepository) Get(ctx context.Context, id string) (models.Subscriber, error) {
	doc, err := r.store.Get(ctx, SubscribersCollection, id)
	if err != nil {
		return models.Subscriber{}, err
	}
	return decodeRecord[models.Subscriber](doc)
}

func (r *SubscriberRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, SubscribersCollection, id)
}
