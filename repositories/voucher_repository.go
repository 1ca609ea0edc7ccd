package repositories

import (
	"context"

	"github.com/HSouheill/barrim_admin/models"
)

type VoucherRepository struct {
	store DocumentStore
}

func NewVoucherRepository(store DocumentStore) *VoucherRepository {
	return &VoucherRepository{store: store}
}

func (r *VoucherRepository) List(ctx context.Context) ([]models.Voucher, error) {
	result, err := r.store.List(ctx, VouchersCollection, ListOptions{})
	if err != nil {
		return nil, err
	}
	return decodeList[models.Voucher](VouchersCollection, result.Documents), nil
}

func (r *VoucherRepository) Get(ctx context.Context, id string) (models.Voucher, error) {
	doc, err := r.store.Get(ctx, VouchersCollection, id)
	if err != nil {
		return models.Voucher{}, err
	}
	return decodeRecord[models.Voucher](doc)
}

func (r *VoucherRepository) Create(ctx context.Context, voucher models.Voucher) (models.Voucher, error) {
	doc, err := EncodeDocument(voucher)
	if err != nil {
		return models.Voucher{}, err
	}
	created, err := r.store.Create(ctx, VouchersCollection, doc)
	if err != nil {
		return models.Voucher{}, err
	}
	return decodeRecord[models.Voucher](created)
}

func (r *VoucherRepository) Update(ctx context.Context, id string, patch Document) (models.Voucher, error) {
	updated, err := r.store.Update(ctx, VouchersCollection, id, patch)
	if err != nil {
		return models.Voucher{}, err
	}
	return decodeRecord[models.Voucher](updated)
}

func (r *VoucherRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, VouchersCollection, id)
}
