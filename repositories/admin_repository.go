package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/HSouheill/barrim_admin/models"
)

type AdminRepository struct {
	store DocumentStore
}

func NewAdminRepository(store DocumentStore) *AdminRepository {
	return &AdminRepository{store: store}
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	result, err := r.store.List(ctx, AdminsCollection, ListOptions{
		Filters: []Filter{Equal("email", email)},
		Limit:   1,
	})
	if err != nil {
		return models.Admin{}, err
	}
	if len(result.Documents) == 0 {
		return models.Admin{}, fmt.Errorf("%w: admin %s", models.ErrNotFound, email)
	}
	return decodeRecord[models.Admin](result.Documents[0])
}

func (r *AdminRepository) Get(ctx context.Context, id string) (models.Admin, error) {
	doc, err := r.store.Get(ctx, AdminsCollection, id)
	if err != nil {
		return models.Admin{}, err
	}
	return decodeRecord[models.Admin](doc)
}

func (r *AdminRepository) Create(ctx context.Context, admin models.Admin) (models.Admin, error) {
	if err := admin.Normalize(); err != nil {
		return models.Admin{}, err
	}
	doc, err := EncodeDocument(admin)
	if err != nil {
		return models.Admin{}, err
	}
	created, err := r.store.Create(ctx, AdminsCollection, doc)
	if err != nil {
		return models.Admin{}, err
	}
	return decodeRecord[models.Admin](created)
}
