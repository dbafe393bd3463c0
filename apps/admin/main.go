package main

import (
	"log"
	"os"

	"github.com/gbswdev/snackbar/core"
	"github.com/gbswdev/snackbar/core/item"
	"github.com/gbswdev/snackbar/core/user"
	emailsvc "github.com/gbswdev/snackbar/services/email"
	mongodb "github.com/gbswdev/snackbar/storage/database/mongo"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up DB
	db, err := mongodb.Open(core.Conf)
	errAndDie(err)
	defer mongodb.Close(db)

	// start CLI
	cli := commandLine{
		usrSvc:  user.NewService(mongodb.NewUserRepository(db), emailsvc.NewConsoleService()),
		itemSvc: item.NewService(mongodb.NewItemRepository(db)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
