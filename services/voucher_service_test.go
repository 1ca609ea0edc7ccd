package services

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HSouheill/barrim_admin/models"
	"github.com/HSouheill/barrim_admin/repositories"
)

func newVoucherService() (*VoucherService, *recordingPublisher) {
	events := &recordingPublisher{}
	repo := repositories.NewVoucherRepository(repositories.NewMemoryStore())
	return NewVoucherService(repo, events), events
}

func TestVoucherService_CreateNormalizesCode(t *testing.T) {
	svc, events := newVoucherService()

	voucher, err := svc.Create(context.Background(), models.VoucherRequest{Code: "  summer10 ", DiscountValue: 10})
	require.NoError(t, err)
	assert.Equal(t, "SUMMER10", voucher.Code)
	assert.Equal(t, 0, voucher.Count)
	assert.Equal(t, models.DefaultUsageLimit, voucher.UsageLimit)
	assert.True(t, voucher.Valid)
	assert.Equal(t, []string{EventVouchersChanged}, events.types())
}

func TestVoucherService_RejectsInvalidInput(t *testing.T) {
	svc, _ := newVoucherService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.VoucherRequest
	}{
		{"short code", models.VoucherRequest{Code: " ab ", DiscountValue: 5}},
		{"zero discount", models.VoucherRequest{Code: "ABC", DiscountValue: 0}},
		{"discount over 100", models.VoucherRequest{Code: "ABC", DiscountValue: 101}},
		{"negative limit", models.VoucherRequest{Code: "ABC", DiscountValue: 5, UsageLimit: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}

func TestVoucherService_CodeMustBeUnique(t *testing.T) {
	svc, _ := newVoucherService()
	ctx := context.Background()

	first, err := svc.Create(ctx, models.VoucherRequest{Code: "SAVE", DiscountValue: 10})
	require.NoError(t, err)

	_, err = svc.Create(ctx, models.VoucherRequest{Code: "save", DiscountValue: 20})
	assert.ErrorIs(t, err, models.ErrDuplicateCode)

	// updating a voucher may keep its own code
	updated, err := svc.Update(ctx, first.ID, models.VoucherRequest{Code: "save", DiscountValue: 15, UsageLimit: 5})
	require.NoError(t, err)
	assert.Equal(t, 15.0, updated.DiscountValue)
	assert.Equal(t, 5, updated.UsageLimit)

	second, err := svc.Create(ctx, models.VoucherRequest{Code: "OTHER", DiscountValue: 5})
	require.NoError(t, err)
	_, err = svc.Update(ctx, second.ID, models.VoucherRequest{Code: "SAVE", DiscountValue: 5})
	assert.ErrorIs(t, err, models.ErrDuplicateCode)
}

func TestVoucherService_UpdateKeepsCount(t *testing.T) {
	store := repositories.NewMemoryStore()
	ids := seedDocs(t, store, repositories.VouchersCollection,
		repositories.Document{"code": "USED", "discountValue": 10.0, "count": 7, "usageLimit": 20, "valid": true},
	)
	svc := NewVoucherService(repositories.NewVoucherRepository(store), nil)

	updated, err := svc.Update(context.Background(), ids[0], models.VoucherRequest{Code: "USED", DiscountValue: 25})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Count)
	assert.Equal(t, models.DefaultUsageLimit, updated.UsageLimit)

	_, err = svc.Update(context.Background(), "missing", models.VoucherRequest{Code: "USED", DiscountValue: 25})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestVoucherService_QRCode(t *testing.T) {
	svc, _ := newVoucherService()
	ctx := context.Background()
	voucher, err := svc.Create(ctx, models.VoucherRequest{Code: "QRCODE", DiscountValue: 10})
	require.NoError(t, err)

	data, err := svc.QRCode(ctx, voucher.ID)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, qrSize, img.Bounds().Dx())

	_, err = svc.QRCode(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
