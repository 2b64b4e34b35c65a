package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 管理トップの集計表示用
type AdminDashboardHandler struct {
	uc *usecase.AdminDashboardUsecase
}

func NewAdminDashboardHandler(uc *usecase.AdminDashboardUsecase) *AdminDashboardHandler {
	return &AdminDashboardHandler{uc: uc}
}

func (h *AdminDashboardHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminGuard())

	admin.GET("/dashboard", h.dashboard)
}

func (h *AdminDashboardHandler) dashboard(c echo.Context) error {
	out, err := h.uc.GetDashboard(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
