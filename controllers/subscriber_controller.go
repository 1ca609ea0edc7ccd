package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HSouheill/barrim_admin/models"
	"github.com/HSouheill/barrim_admin/services"
)

type SubscriberController struct {
	subscribers *services.SubscriberService
}

func NewSubscriberController(subscribers *services.SubscriberService) *SubscriberController {
	return &SubscriberController{subscribers: subscribers}
}

func (sc *SubscriberController) GetSubscribers(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	subscribers, err := sc.subscribers.FetchAll(ctx)
	if err != nil {
		return respondError(c, err, "Failed to fetch subscribers")
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Subscribers retrieved successfully",
		Data:    subscribers,
	})
}

// DeleteSubscribers deletes the listed ids, or every subscriber when all is set
func (sc *SubscriberController) DeleteSubscribers(c echo.Context) error {
	var req models.SubscriberDeleteRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if req.All {
		deleted, err := sc.subscribers.DeleteAll(ctx)
		if err != nil {
			return respondError(c, err, "Failed to delete subscribers")
		}
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "All subscribers deleted successfully",
			Data:    map[string]int{"deleted": deleted},
			Notices: []models.Notice{models.SuccessNotice("All subscribers deleted successfully")},
		})
	}

	if err := sc.subscribers.DeleteSelected(ctx, req.IDs); err != nil {
		return respondError(c, err, "Failed to delete subscribers")
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Selected subscribers deleted successfully",
		Data:    map[string]int{"deleted": len(req.IDs)},
		Notices: []models.Notice{models.SuccessNotice("Selected subscribers deleted successfully")},
	})
}

// GetMailtoLink builds a mailto link addressed to the selected subscribers
func (sc *SubscriberController) GetMailtoLink(c echo.Context) error {
	var req models.SubscriberMailRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	link, notices, err := sc.subscribers.Mailto(ctx, req)
	if err != nil {
		return respondError(c, err, "Failed to fetch subscribers")
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Mailto link generated",
		Data:    map[string]string{"mailto": link},
		Notices: notices,
	})
}

func (sc *SubscriberController) Broadcast(c echo.Context) error {
	var req models.SubscriberMailRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	sent, notices, err := sc.subscribers.Broadcast(ctx, req)
	if err != nil {
		return respondError(c, err, "Failed to send email")
	}
	if sent > 0 {
		notices = append(notices, models.SuccessNotice("Email sent successfully"))
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Broadcast processed",
		Data:    map[string]int{"sent": sent},
		Notices: notices,
	})
}
