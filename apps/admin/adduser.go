package main

import (
	"context"

	"github.com/gbswdev/snackbar/core/user"
)

func (cli *commandLine) addUser(nu user.NewUser, role string) error {
	ctx := context.Background()
	if err := nu.Validate(cli.usrSvc); err != nil {
		return err
	}
	usr, err := cli.usrSvc.Create(ctx, role, nu)
	if err != nil {
		return err
	}
	logger.Printf("%s %q created", usr.Role, usr.ID)
	return nil
}
