package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HSouheill/barrim_admin/models"
	"github.com/HSouheill/barrim_admin/services"
)

type WholesaleRequestController struct {
	aggregator  *services.WholesaleAggregator
	transitions *services.WholesaleTransitions
	resolver    *services.AttachmentResolver
}

func NewWholesaleRequestController(
	aggregator *services.WholesaleAggregator,
	transitions *services.WholesaleTransitions,
	resolver *services.AttachmentResolver,
) *WholesaleRequestController {
	return &WholesaleRequestController{aggregator: aggregator, transitions: transitions, resolver: resolver}
}

// wholesaleListing is the list payload: the filtered rows plus per-tab counts
type wholesaleListing struct {
	Requests []models.WholesaleRequestRow `json:"requests"`
	Counts   map[string]int               `json:"counts"`
}

func listing(view *services.WholesaleView, tab, search string) wholesaleListing {
	counts := map[string]int{"all": len(view.Requests)}
	for _, status := range []models.WholesaleStatus{models.WholesalePending, models.WholesaleApproved, models.WholesaleRejected} {
		counts[string(status)] = 0
	}
	for _, req := range view.Requests {
		counts[string(req.Status)]++
	}
	return wholesaleListing{Requests: view.Filter(tab, search), Counts: counts}
}

// GetWholesaleRequests lists the requests of a tab, optionally searched by
// applicant name
func (wc *WholesaleRequestController) GetWholesaleRequests(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	view, err := wc.aggregator.FetchAll(ctx)
	if err != nil {
		return respondError(c, err, "Failed to fetch wholesale requests.")
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Wholesale requests retrieved successfully",
		Data:    listing(view, c.QueryParam("tab"), c.QueryParam("search")),
	})
}

// GetWholesaleRequest returns one request with its labeled attachments
func (wc *WholesaleRequestController) GetWholesaleRequest(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	req, user, err := wc.aggregator.Get(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to fetch wholesale request.")
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Wholesale request retrieved successfully",
		Data: models.WholesaleRequestDetails{
			Request:     req,
			User:        user,
			Attachments: wc.resolver.Resolve(ctx, req.Attachments),
		},
	})
}

func (wc *WholesaleRequestController) ApproveWholesaleRequest(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := wc.transitions.Approve(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to approve request.")
	}
	return transitionResponse(c, result)
}

func (wc *WholesaleRequestController) RejectWholesaleRequest(c echo.Context) error {
	var body models.RejectRequest
	if ok, err := bindAndValidate(c, &body); !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := wc.transitions.Reject(ctx, c.Param("id"), body.Reason)
	if err != nil {
		return respondError(c, err, "Failed to reject request.")
	}
	return transitionResponse(c, result)
}

func transitionResponse(c echo.Context, result *services.TransitionResult) error {
	data := map[string]interface{}{
		"request":       result.Request,
		"mirrorSkipped": result.MirrorSkipped,
	}
	if result.View != nil {
		data["listing"] = listing(result.View, c.QueryParam("tab"), c.QueryParam("search"))
	}
	message := "Request updated successfully."
	if len(result.Notices) > 0 {
		message = result.Notices[0].Message
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: message,
		Data:    data,
		Notices: result.Notices,
	})
}
