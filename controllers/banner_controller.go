package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/HSouheill/barrim_admin/models"
	"github.com/HSouheill/barrim_admin/services"
)

type BannerController struct {
	banners *services.BannerService
}

func NewBannerController(banners *services.BannerService) *BannerController {
	return &BannerController{banners: banners}
}

// GetBanners returns one page of banners; ?cursor= continues after a banner id
func (bc *BannerController) GetBanners(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := requestContext(c)
	defer cancel()

	page, err := bc.banners.List(ctx, c.QueryParam("cursor"), limit)
	if err != nil {
		return respondError(c, err, "Failed to fetch banners")
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Banners retrieved successfully",
		Data:    page,
	})
}

func (bc *BannerController) GetBanner(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	banner, err := bc.banners.Get(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to fetch banner data")
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Banner retrieved successfully",
		Data:    banner,
	})
}

// CreateBanner expects multipart form data with title, subtitle and image
func (bc *BannerController) CreateBanner(c echo.Context) error {
	req := models.BannerRequest{Title: c.FormValue("title"), Subtitle: c.FormValue("subtitle")}
	image, err := readImage(c, "image")
	if err != nil {
		return respondError(c, err, "Failed to add banner. Please try again.")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	banner, err := bc.banners.Create(ctx, req, image)
	if err != nil {
		return respondError(c, err, "Failed to add banner. Please try again.")
	}
	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Banner has been added successfully",
		Data:    banner,
		Notices: []models.Notice{models.SuccessNotice("Banner has been added successfully")},
	})
}

// UpdateBanner accepts the same form as CreateBanner; the image is optional
func (bc *BannerController) UpdateBanner(c echo.Context) error {
	req := models.BannerRequest{Title: c.FormValue("title"), Subtitle: c.FormValue("subtitle")}
	image, err := readImage(c, "image")
	if err != nil {
		return respondError(c, err, "Failed to update banner. Please try again.")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	banner, err := bc.banners.Update(ctx, c.Param("id"), req, image)
	if err != nil {
		return respondError(c, err, "Failed to update banner. Please try again.")
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Banner updated successfully",
		Data:    banner,
		Notices: []models.Notice{models.SuccessNotice("Banner updated successfully")},
	})
}

func (bc *BannerController) DeleteBanner(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := bc.banners.Delete(ctx, c.Param("id")); err != nil {
		return respondError(c, err, "Failed to delete banner")
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Banner deleted successfully",
		Notices: []models.Notice{models.SuccessNotice("Banner deleted successfully")},
	})
}
