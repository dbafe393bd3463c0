package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gbswdev/snackbar/core/cheer"
)

type cheerApi struct {
	svc *cheer.Service
}

func registerCheerAPI(e *echo.Echo, jwt echo.MiddlewareFunc, svc *cheer.Service) {
	api := cheerApi{svc: svc}

	g := e.Group("/cheer")
	g.GET("/today", api.today)
	g.POST("", api.create, jwt, staffMiddleware())
}

func (api *cheerApi) today(ctx echo.Context) error {
	cheers, err := api.svc.Today(ctx.Request().Context(), ctx.QueryParam("target"))
	if err != nil {
		return errors.Wrap(err, "querying today's cheers")
	}
	return ctx.JSON(http.StatusOK, cheers)
}

func (api *cheerApi) create(ctx echo.Context) error {
	var data cheer.NewCheer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCheer")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ch, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating cheer")
	}
	return ctx.JSON(http.StatusCreated, ch)
}
