package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//contextに入っているis_adminを確認します。
//AuthJWTの後ろに重ねて使う前提。

func AdminGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawID := c.Get(CtxUserIDKey)
			if _, ok := rawID.(int64); !ok {
				//未ログインは401
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//ログイン済みでも管理者でなければ403
			isAdmin, ok := c.Get(CtxIsAdminKey).(bool)
			if !ok || !isAdmin {
				return c.JSON(http.StatusForbidden, errorJSON("admin only"))
			}

			return next(c)
		}
	}
}
