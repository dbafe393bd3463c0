package main

import (
	"context"

	"github.com/gbswdev/snackbar/core/item"
	"github.com/gbswdev/snackbar/core/user"
)

var (
	seedUsers = []struct {
		role string
		nu   user.NewUser
	}{
		{user.RoleStudent, user.NewUser{ID: "s1002", Name: "홍길동", Category: "게임개발", Grade: 2, Number: 7}},
		{user.RoleStudent, user.NewUser{ID: "s2001", Name: "이몽룡", Category: "정보기술", Grade: 1, Number: 3}},
		{user.RoleTeacher, user.NewUser{ID: "t1001", Name: "김선생", Category: "정보기술", Department: "3반"}},
	}

	seedItems = []item.NewItem{
		{Name: "콜라", Type: item.TypeDrink},
		{Name: "사이다", Type: item.TypeDrink},
		{Name: "새우깡", Type: item.TypeSnack},
		{Name: "신라면", Type: item.TypeRamen},
	}
)

// seed loads the sample users and items, skipping users that already exist.
func (cli *commandLine) seed() error {
	ctx := context.Background()

	for _, su := range seedUsers {
		nu := su.nu
		if err := nu.Validate(cli.usrSvc); err != nil {
			logger.Printf("skipping %q: %v", nu.ID, err)
			continue
		}
		if _, err := cli.usrSvc.Create(ctx, su.role, nu); err != nil {
			return err
		}
		logger.Printf("%s %q created", su.role, nu.ID)
	}

	existing, err := cli.itemSvc.QueryAll(ctx)
	if err != nil {
		return err
	}
	names := make(map[string]bool, len(existing))
	for _, it := range existing {
		names[it.Name] = true
	}
	for _, ni := range seedItems {
		if names[ni.Name] {
			continue
		}
		if _, err := cli.itemSvc.Create(ctx, ni); err != nil {
			return err
		}
		logger.Printf("item %q created", ni.Name)
	}
	return nil
}
