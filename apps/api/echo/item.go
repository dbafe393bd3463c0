package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gbswdev/snackbar/core/item"
)

type itemApi struct {
	svc *item.Service
}

func registerItemAPI(e *echo.Echo, jwt echo.MiddlewareFunc, svc *item.Service) {
	api := itemApi{svc: svc}

	g := e.Group("/items")

	// staff-only management endpoints
	sg := g.Group("", jwt, staffMiddleware())
	sg.POST("", api.create)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)

	// registered after the subgroup: Group("") wires its middleware via
	// catch-all Any routes on the same prefix, which would shadow this
	// public route if it were added first
	g.GET("", api.query)
}

func (api *itemApi) query(ctx echo.Context) error {
	items, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying items")
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *itemApi) create(ctx echo.Context) error {
	var data item.NewItem
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewItem")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	it, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating item")
	}
	return ctx.JSON(http.StatusCreated, it)
}

func (api *itemApi) update(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	orig, err := api.svc.GetByID(reqCtx, ctx.Param("id"))
	if err != nil {
		return err
	}

	var data item.UpdateItem
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateItem")
	}
	if err := data.Validate(orig); err != nil {
		return err
	}

	it, err := api.svc.Update(reqCtx, orig.ID, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, it)
}

func (api *itemApi) destroy(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	it, err := api.svc.GetByID(reqCtx, ctx.Param("id"))
	if err != nil {
		return err
	}
	if err := api.svc.Delete(reqCtx, it.ID); err != nil {
		return errors.Wrap(err, "deleting item")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "item deleted"})
}
