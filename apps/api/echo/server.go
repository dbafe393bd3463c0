package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/gbswdev/snackbar/core"
	"github.com/gbswdev/snackbar/core/bus"
	"github.com/gbswdev/snackbar/core/cheer"
	"github.com/gbswdev/snackbar/core/item"
	"github.com/gbswdev/snackbar/core/order"
	"github.com/gbswdev/snackbar/core/user"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool

		Logger   core.Logger
		Broker   *bus.Broker
		ItemSvc  *item.Service
		OrderSvc *order.Service
		UserSvc  *user.Service
		CheerSvc *cheer.Service
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	debug := core.Conf.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger)
	s.app.Debug = debug

	s.app.GET("/", home)

	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerAuthAPI(s.app, jwt, s.opts.UserSvc)
	registerUserAPI(s.app, jwt, s.opts.UserSvc)
	registerItemAPI(s.app, jwt, s.opts.ItemSvc)
	registerOrderAPI(s.app, jwt, s.opts.OrderSvc)
	registerCheerAPI(s.app, jwt, s.opts.CheerSvc)
	registerSocketAPI(s.app, s.opts.Broker, s.opts.Logger)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Addr)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the "+core.Conf.AppName+" API!")
}
