package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gbswdev/snackbar/core"
	"github.com/gbswdev/snackbar/core/user"
)

type userApi struct {
	svc  *user.Service
	role string
}

// registerUserAPI mounts the same management surface twice, once per role;
// the role tag is the only difference between the two.
func registerUserAPI(e *echo.Echo, jwt echo.MiddlewareFunc, svc *user.Service) {
	registerRoleAPI(e, jwt, svc, "/students", user.RoleStudent)
	registerRoleAPI(e, jwt, svc, "/teachers", user.RoleTeacher)
}

func registerRoleAPI(e *echo.Echo, jwt echo.MiddlewareFunc, svc *user.Service, prefix, role string) {
	api := userApi{svc: svc, role: role}

	g := e.Group(prefix)

	// self-service password change
	g.PATCH("/:id/password", api.changePassword, jwt, selfMiddleware(role))

	// staff-only management endpoints
	sg := g.Group("", jwt, staffMiddleware())
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
	sg.PATCH("/:id/reset-password", api.resetPassword)
}

func (api *userApi) query(ctx echo.Context) error {
	users, err := api.svc.Query(ctx.Request().Context(), api.role)
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) create(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	usr, err := api.svc.Create(ctx.Request().Context(), api.role, data)
	if err != nil {
		return errors.Wrap(err, "creating user")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userApi) update(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	orig, err := api.svc.Get(reqCtx, api.role, ctx.Param("id"))
	if err != nil {
		return err
	}

	var data user.UpdateUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUser")
	}
	if err := data.Validate(orig); err != nil {
		return err
	}

	usr, err := api.svc.Update(reqCtx, api.role, orig.ID, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) destroy(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	usr, err := api.svc.Get(reqCtx, api.role, ctx.Param("id"))
	if err != nil {
		return err
	}

	// Say No to Suicide! staff cannot delete themselves
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if claims.Role == api.role && claims.Subject == usr.ID {
		return errHttpForbidden
	}

	if err := api.svc.Delete(reqCtx, api.role, usr.ID); err != nil {
		return errors.Wrap(err, "deleting user")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}

func (api *userApi) resetPassword(ctx echo.Context) error {
	usr, err := api.svc.ResetPassword(ctx.Request().Context(), api.role, ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "password reset", "user": usr})
}

func (api *userApi) changePassword(ctx echo.Context) error {
	var data user.ChangePassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChangePassword")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if _, err := api.svc.ChangePassword(ctx.Request().Context(), api.role, ctx.Param("id"), data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "password changed"})
}

// Auth

type authApi struct {
	svc *user.Service
}

func registerAuthAPI(e *echo.Echo, jwt echo.MiddlewareFunc, svc *user.Service) {
	api := authApi{svc: svc}

	g := e.Group("/auth")
	g.POST("", api.login)
	g.POST("/refresh", api.refreshToken, jwt)
}

type (
	LoginRequest struct {
		ID       string `json:"id" validate:"required"`
		Password string `json:"password" validate:"required"`
		Role     string `json:"role" validate:"required,oneof=student teacher"`
	}

	LoginResponse struct {
		Role  string    `json:"role"`
		User  user.User `json:"user"`
		Token string    `json:"token"`
	}

	TokenResponse struct {
		Token string `json:"token"`
	}
)

func (lr *LoginRequest) Validate() error {
	lr.ID = core.CleanString(lr.ID, true /* lower */)
	lr.Role = core.CleanString(lr.Role, true /* lower */)
	return core.Validate.Struct(lr)
}

// login checks the credentials within the requested role's records and issues
// a token. Unknown id → 404, bad password → 401, bad role → 400; the original
// wire shape {role, user} is kept, with the token added.
func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err := api.svc.Authenticate(ctx.Request().Context(), data.Role, data.ID, data.Password)
	if err != nil {
		return err
	}
	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Role: usr.Role, User: usr, Token: token})
}

func (api *authApi) refreshToken(ctx echo.Context) error {
	token, err := RefreshToken(ctx, api.svc)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}
