package services

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"

	"github.com/HSouheill/barrim_admin/models"
	"github.com/HSouheill/barrim_admin/repositories"
)

const EventVouchersChanged = "vouchers_changed"

// qrSize is the edge length of rendered voucher QR codes in pixels
const qrSize = 300

// VoucherService manages storefront discount codes
type VoucherService struct {
	vouchers *repositories.VoucherRepository
	events   EventPublisher
}

func NewVoucherService(vouchers *repositories.VoucherRepository, events EventPublisher) *VoucherService {
	return &VoucherService{vouchers: vouchers, events: events}
}

func (s *VoucherService) List(ctx context.Context) ([]models.Voucher, error) {
	vouchers, err := s.vouchers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vouchers: %w", err)
	}
	return vouchers, nil
}

// Create saves a new voucher with a zero use count
func (s *VoucherService) Create(ctx context.Context, req models.VoucherRequest) (models.Voucher, error) {
	code, usageLimit, err := s.validate(ctx, req, "")
	if err != nil {
		return models.Voucher{}, err
	}

	voucher, err := s.vouchers.Create(ctx, models.Voucher{
		Code:          code,
		DiscountValue: req.DiscountValue,
		Count:         0,
		UsageLimit:    usageLimit,
		Valid:         usageLimit > 0,
	})
	if err != nil {
		return models.Voucher{}, fmt.Errorf("failed to create voucher: %w", err)
	}
	publish(s.events, EventVouchersChanged, "Voucher created", voucher)
	return voucher, nil
}

// Update rewrites code, discount and usage limit; the use count is kept
func (s *VoucherService) Update(ctx context.Context, id string, req models.VoucherRequest) (models.Voucher, error) {
	if _, err := s.vouchers.Get(ctx, id); err != nil {
		return models.Voucher{}, err
	}
	code, usageLimit, err := s.validate(ctx, req, id)
	if err != nil {
		return models.Voucher{}, err
	}

	voucher, err := s.vouchers.Update(ctx, id, repositories.Document{
		"code":          code,
		"discountValue": req.DiscountValue,
		"usageLimit":    usageLimit,
		"valid":         usageLimit > 0,
	})
	if err != nil {
		return models.Voucher{}, fmt.Errorf("failed to update voucher: %w", err)
	}
	publish(s.events, EventVouchersChanged, "Voucher updated", voucher)
	return voucher, nil
}

func (s *VoucherService) Delete(ctx context.Context, id string) error {
	if err := s.vouchers.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete voucher: %w", err)
	}
	publish(s.events, EventVouchersChanged, "Voucher deleted", map[string]string{"id": id})
	return nil
}

// QRCode renders the voucher code as a PNG QR code
func (s *VoucherService) QRCode(ctx context.Context, id string) ([]byte, error) {
	voucher, err := s.vouchers.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	qrCode, err := qr.Encode(voucher.Code, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	qrCode, err = barcode.Scale(qrCode, qrSize, qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to scale QR code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qrCode); err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return buf.Bytes(), nil
}

// validate normalizes the code, checks it is unique among the other
// vouchers and resolves the effective usage limit
func (s *VoucherService) validate(ctx context.Context, req models.VoucherRequest, selfID string) (string, int, error) {
	code := models.NormalizeVoucherCode(req.Code)
	if len(code) < 3 {
		return "", 0, fmt.Errorf("%w: voucher code must be at least 3 characters", models.ErrInvalidInput)
	}
	if req.DiscountValue <= 0 {
		return "", 0, fmt.Errorf("%w: discount value must be positive", models.ErrInvalidInput)
	}
	if req.DiscountValue > 100 {
		return "", 0, fmt.Errorf("%w: discount value cannot exceed 100", models.ErrInvalidInput)
	}
	if req.UsageLimit < 0 {
		return "", 0, fmt.Errorf("%w: usage limit cannot be negative", models.ErrInvalidInput)
	}

	existing, err := s.vouchers.List(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("failed to fetch vouchers: %w", err)
	}
	for _, v := range existing {
		if v.ID != selfID && models.NormalizeVoucherCode(v.Code) == code {
			return "", 0, models.ErrDuplicateCode
		}
	}

	usageLimit := req.UsageLimit
	if usageLimit == 0 {
		usageLimit = models.DefaultUsageLimit
	}
	return code, usageLimit, nil
}
