package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	echoapi "github.com/gbswdev/snackbar/apps/api/echo"
	"github.com/gbswdev/snackbar/core"
	"github.com/gbswdev/snackbar/core/bus"
	"github.com/gbswdev/snackbar/core/cheer"
	"github.com/gbswdev/snackbar/core/item"
	"github.com/gbswdev/snackbar/core/order"
	"github.com/gbswdev/snackbar/core/user"
	emailsvc "github.com/gbswdev/snackbar/services/email"
	logsvc "github.com/gbswdev/snackbar/services/logger"
	mongodb "github.com/gbswdev/snackbar/storage/database/mongo"
)

func main() {
	conf := core.Conf

	// set up logger
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := mongodb.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err := mongodb.Close(db); err != nil {
			logger.Error(fmt.Sprintf("closing database: %v", err), err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	broker := bus.NewBroker()
	itemSvc := item.NewService(mongodb.NewItemRepository(db))
	orderSvc := order.NewService(mongodb.NewOrderRepository(db), broker)
	usrSvc := user.NewService(mongodb.NewUserRepository(db), mailSvc)
	cheerSvc := cheer.NewService(mongodb.NewCheerRepository(db), broker)

	logger.Info(fmt.Sprintf("Application initializing : env %q", conf.Env))
	defer logger.Info("Application stopped")

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:     conf.Address(),
			Logger:   logger,
			Broker:   broker,
			ItemSvc:  itemSvc,
			OrderSvc: orderSvc,
			UserSvc:  usrSvc,
			CheerSvc: cheerSvc,
		},
	)

	serverErrs := make(chan error, 1)
	go func() {
		serverErrs <- app.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrs:
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal(fmt.Sprintf("server error: %v", err), err)
		}

	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		if err := app.Stop(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		}
	}
}
