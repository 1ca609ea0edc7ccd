package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HSouheill/barrim_admin/models"
	"github.com/HSouheill/barrim_admin/services"
)

type GeneralDataController struct {
	data *services.GeneralDataService
}

func NewGeneralDataController(data *services.GeneralDataService) *GeneralDataController {
	return &GeneralDataController{data: data}
}

func (gc *GeneralDataController) GetGeneralData(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	view, notices, err := gc.data.Get(ctx)
	if err != nil {
		return respondError(c, err, "Failed to fetch General Data.")
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "General data retrieved successfully",
		Data:    view,
		Notices: notices,
	})
}

// UpdateImages takes a multipart form with one optional file per image slot
func (gc *GeneralDataController) UpdateImages(c echo.Context) error {
	images := map[string]*services.ImageUpload{}
	for _, slot := range models.ImageSlots {
		image, err := readImage(c, slot)
		if err != nil {
			return respondError(c, err, "Failed to update Images. Please try again.")
		}
		if image != nil {
			images[slot] = image
		}
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	view, err := gc.data.UpdateImages(ctx, c.Param("id"), images)
	if err != nil {
		return respondError(c, err, "Failed to update Images. Please try again.")
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Images updated successfully",
		Data:    view,
		Notices: []models.Notice{models.SuccessNotice("Images updated successfully")},
	})
}

func (gc *GeneralDataController) UpdateLinks(c echo.Context) error {
	var req models.GeneralDataLinksRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	view, err := gc.data.UpdateLinks(ctx, c.Param("id"), req)
	if err != nil {
		return respondError(c, err, "Failed to update General Data.")
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "General data updated successfully",
		Data:    view,
		Notices: []models.Notice{models.SuccessNotice("General data updated successfully")},
	})
}
