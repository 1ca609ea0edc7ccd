package repositories

import (
	"context"

	"github.com/HSouheill/barrim_admin/models"
)

type GeneralDataRepository struct {
	store DocumentStore
}

func NewGeneralDataRepository(store DocumentStore) *GeneralDataRepository {
	return &GeneralDataRepository{store: store}
}

// First returns the first general data document, or nil when there is none
func (r *GeneralDataRepository) First(ctx context.Context) (*models.GeneralData, error) {
	result, err := r.store.List(ctx, GeneralDataCollection, ListOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(result.Documents) == 0 {
		return nil, nil
	}
	data, err := decodeRecord[models.GeneralData](result.Documents[0])
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *GeneralDataRepository) Get(ctx context.Context, id string) (models.GeneralData, error) {
	doc, err := r.store.Get(ctx, GeneralDataCollection, id)
	if err != nil {
		return models.GeneralData{}, err
	}
	return decodeRecord[models.GeneralData](doc)
}

func (r *GeneralDataRepository) Create(ctx context.Context, data models.GeneralData) (models.GeneralData, error) {
	doc, err := EncodeDocument(data)
	if err != nil {
		return models.GeneralData{}, err
	}
	created, err := r.store.Create(ctx, GeneralDataCollection, doc)
	if err != nil {
		return models.GeneralData{}, err
	}
	return decodeRecord[models.GeneralData](created)
}

func (r *GeneralDataRepository) Update(ctx context.Context, id string, patch Document) (models.GeneralData, error) {
	updated, err := r.store.Update(ctx, GeneralDataCollection, id, patch)
	if err != nil {
		return models.GeneralData{}, err
	}
	return decodeRecord[models.GeneralData](updated)
}
