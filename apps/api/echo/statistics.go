package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/mahudhurio/core/attendance"
)

func registerStatisticsAPI(g *echo.Group, svc attendance.ServiceInterface) {
	g.GET("/statistics", func(ctx echo.Context) error {
		stats, err := svc.Statistics()
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, stats)
	})
}
