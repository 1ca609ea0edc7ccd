package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HSouheill/barrim_admin/models"
	"github.com/HSouheill/barrim_admin/services"
)

type VoucherController struct {
	vouchers *services.VoucherService
}

func NewVoucherController(vouchers *services.VoucherService) *VoucherController {
	return &VoucherController{vouchers: vouchers}
}

func (vc *VoucherController) GetVouchers(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	vouchers, err := vc.vouchers.List(ctx)
	if err != nil {
		return respondError(c, err, "Failed to fetch vouchers")
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Vouchers retrieved successfully",
		Data:    vouchers,
	})
}

func (vc *VoucherController) CreateVoucher(c echo.Context) error {
	var req models.VoucherRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	voucher, err := vc.vouchers.Create(ctx, req)
	if err != nil {
		return respondError(c, err, "Failed to create voucher")
	}
	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Voucher created successfully",
		Data:    voucher,
		Notices: []models.Notice{models.SuccessNotice("Voucher created successfully")},
	})
}

func (vc *VoucherController) UpdateVoucher(c echo.Context) error {
	var req models.VoucherRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	voucher, err := vc.vouchers.Update(ctx, c.Param("id"), req)
	if err != nil {
		return respondError(c, err, "Failed to update voucher")
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Voucher updated successfully",
		Data:    voucher,
		Notices: []models.Notice{models.SuccessNotice("Voucher updated successfully")},
	})
}

func (vc *VoucherController) DeleteVoucher(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := vc.vouchers.Delete(ctx, c.Param("id")); err != nil {
		return respondError(c, err, "Failed to delete voucher")
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Voucher deleted successfully",
		Notices: []models.Notice{models.SuccessNotice("Voucher deleted successfully")},
	})
}

// GetVoucherQRCode renders the voucher code as a PNG
func (vc *VoucherController) GetVoucherQRCode(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	png, err := vc.vouchers.QRCode(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to generate QR code")
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
