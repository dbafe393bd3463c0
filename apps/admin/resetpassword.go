package main

import (
	"context"
)

func (cli *commandLine) resetPassword(role, id string) error {
	usr, err := cli.usrSvc.ResetPassword(context.Background(), role, id)
	if err != nil {
		return err
	}
	logger.Printf("%s %q password reset", usr.Role, usr.ID)
	return nil
}
