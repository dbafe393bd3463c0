package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/gbswdev/snackbar/core/item"
	"github.com/gbswdev/snackbar/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	usrSvc  *user.Service
	itemSvc *item.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  seed - load sample users and items")
	fmt.Println("  adduser -id ID -name NAME [-role student|teacher] [...] - create or update a user. The password will be prompted next.")
	fmt.Println("  resetpassword -id ID [-role student|teacher] - reset a user's password to the default")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserID := addUserCmd.String("id", "", "The user's login id, e.g. s1002.")
	addUserName := addUserCmd.String("name", "", "The user's display name.")
	addUserRole := addUserCmd.String("role", user.RoleStudent, "student or teacher.")
	addUserCategory := addUserCmd.String("category", "", "The user's department or major.")
	addUserGrade := addUserCmd.Int("grade", 0, "The student's grade (1-3).")
	addUserNumber := addUserCmd.Int("number", 0, "The student's class number.")
	addUserDept := addUserCmd.String("department", "", "The teacher's homeroom.")
	addUserEmail := addUserCmd.String("email", "", "The user's email address (optional).")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordID := resetPasswordCmd.String("id", "", "The user's login id.")
	resetPasswordRole := resetPasswordCmd.String("role", user.RoleStudent, "student or teacher.")

	switch args[1] {
	case "seed":
		return cli.seed()
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserID == "" || *addUserName == "" {
			addUserCmd.Usage()
			return errHelp
		}
		if !user.IsValidRole(*addUserRole) {
			addUserCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password (empty for default):")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		return cli.addUser(user.NewUser{
			ID:         *addUserID,
			Name:       *addUserName,
			Category:   *addUserCategory,
			Grade:      *addUserGrade,
			Number:     *addUserNumber,
			Department: *addUserDept,
			Email:      *addUserEmail,
			Password:   string(pwd),
		}, *addUserRole)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordID == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		if !user.IsValidRole(*resetPasswordRole) {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordRole, *resetPasswordID)
	default:
		cli.printUsage()
		return errHelp
	}
}
