package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// ルート登録に必要なhandlerをまとめて受け取る
type Handlers struct {
	Auth           *handler.AuthHandler
	Product        *handler.ProductHandler
	Cart           *handler.CartHandler
	Order          *handler.OrderHandler
	AdminProduct   *handler.AdminProductHandler
	AdminOrder     *handler.AdminOrderHandler
	AdminDashboard *handler.AdminDashboardHandler
	AdminAudit     *handler.AdminAuditHandler
}

func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	//リクエストログとpanic回収
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	registerRoutes(e, cfg, h)

	return e
}

func Start(addr string, cfg config.Config, h Handlers) error {
	e := New(cfg, h)
	return e.Start(addr)
}
