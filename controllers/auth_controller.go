package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/HSouheill/barrim_admin/middleware"
	"github.com/HSouheill/barrim_admin/models"
	"github.com/HSouheill/barrim_admin/repositories"
	"github.com/HSouheill/barrim_admin/services"
	"github.com/HSouheill/barrim_admin/websocket"
)

// AuthController handles admin sessions
type AuthController struct {
	auth   *services.AuthService
	admins *repositories.AdminRepository
	hub    *websocket.Hub
	now    func() time.Time
}

func NewAuthController(auth *services.AuthService, admins *repositories.AdminRepository, hub *websocket.Hub) *AuthController {
	return &AuthController{auth: auth, admins: admins, hub: hub, now: time.Now}
}

func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := ac.auth.Login(ctx, req)
	if err != nil {
		return respondError(c, err, "Invalid email or password")
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data:    resp,
	})
}

// GetDashboard returns the signed in admin with the dashboard greeting
func (ac *AuthController) GetDashboard(c echo.Context) error {
	adminID, err := middleware.ExtractAdminID(c)
	if err != nil {
		return respondError(c, models.ErrUnauthorized, "Unauthorized")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	admin, err := ac.admins.Get(ctx, adminID)
	if err != nil {
		return respondError(c, err, "Failed to fetch admin")
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Dashboard retrieved successfully",
		Data: map[string]interface{}{
			"admin":    admin,
			"greeting": services.Greeting(ac.now(), admin.Name),
		},
	})
}

// Connect upgrades the request to the admin event stream
func (ac *AuthController) Connect(c echo.Context) error {
	adminID, err := middleware.ExtractAdminID(c)
	if err != nil {
		return respondError(c, models.ErrUnauthorized, "Unauthorized")
	}
	return websocket.HandleWebSocket(c, ac.hub, adminID)
}
