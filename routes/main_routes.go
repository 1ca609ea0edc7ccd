package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HSouheill/barrim_admin/models"
	"github.com/HSouheill/barrim_admin/websocket"
)

// SetupRoutes configures all API routes by calling individual route registration functions
func SetupRoutes(e *echo.Echo, h Controllers, hub *websocket.Hub, jwtSecret string) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Server is running",
			Data:    map[string]int{"websocketClients": hub.ClientCount()},
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	RegisterAdminRoutes(e, h, jwtSecret)
}
