package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gbswdev/snackbar/core/order"
	"github.com/gbswdev/snackbar/core/user"
)

type orderApi struct {
	svc *order.Service
}

func registerOrderAPI(e *echo.Echo, jwt echo.MiddlewareFunc, svc *order.Service) {
	api := orderApi{svc: svc}

	g := e.Group("/orders")

	ag := g.Group("", jwt)
	ag.POST("", api.create)
	ag.PATCH("/:id", api.updateStatus, staffMiddleware())
	ag.DELETE("/:id", api.cancel)

	// registered after the subgroup: Group("") wires its middleware via
	// catch-all Any routes on the same prefix, which would shadow these
	// public routes if they were added first
	g.GET("", api.query)
	g.GET("/popular", api.popular)
}

func (api *orderApi) query(ctx echo.Context) error {
	filter := order.QueryFilter{StudentName: ctx.QueryParam("studentName")}
	orders, err := api.svc.Filter(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying orders")
	}
	return ctx.JSON(http.StatusOK, orders)
}

func (api *orderApi) create(ctx echo.Context) error {
	var data order.NewOrder
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewOrder")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ord, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating order")
	}
	return ctx.JSON(http.StatusCreated, ord)
}

func (api *orderApi) updateStatus(ctx echo.Context) error {
	var data order.StatusUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusUpdate")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ord, err := api.svc.UpdateStatus(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ord)
}

// cancel soft-cancels a pending order. Allowed for staff and for the
// requester; ownership is the requester-name match the clients already filter
// on.
func (api *orderApi) cancel(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	ord, err := api.svc.GetByID(reqCtx, ctx.Param("id"))
	if err != nil {
		return err
	}
	if claims.Role != user.RoleTeacher && claims.Name != ord.StudentName {
		return errHttpForbidden
	}

	if _, err := api.svc.Cancel(reqCtx, ord.ID); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "order cancelled"})
}

func (api *orderApi) popular(ctx echo.Context) error {
	counts, err := api.svc.Popular(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "aggregating popular menus")
	}
	return ctx.JSON(http.StatusOK, counts)
}
