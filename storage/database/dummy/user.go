package dummydb

import (
	"context"
	"sort"

	"github.com/gbswdev/snackbar/core/user"
)

type userRepository struct {
	db *userTable
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.users}
}

func (repo *userRepository) CheckIDUniqueness(_ context.Context, id string) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if _, ok := repo.db.rows[id]; ok {
		return user.ErrIDExists
	}
	return nil
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rows[usr.ID]; ok {
		return user.User{}, user.ErrIDExists
	}
	repo.db.rows[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) QueryUsersByRole(_ context.Context, role string) ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	users := make([]user.User, 0)
	for _, usr := range repo.db.rows {
		if usr.Role == role {
			users = append(users, *usr)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (repo *userRepository) GetUser(_ context.Context, role, id string) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if usr, ok := repo.db.rows[id]; ok && usr.Role == role {
		return *usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	// only save set fields
	orig, ok := repo.db.rows[usr.ID]
	if !ok || orig.Role != usr.Role {
		return user.User{}, user.ErrNotFound
	}
	orig.Name = usr.Name
	orig.Category = usr.Category
	orig.Email = usr.Email
	orig.UpdatedAt = usr.UpdatedAt
	if usr.Grade != 0 {
		orig.Grade = usr.Grade
	}
	if usr.Number != 0 {
		orig.Number = usr.Number
	}
	if usr.Department != "" {
		orig.Department = usr.Department
	}
	if usr.PasswordHash != nil {
		orig.PasswordHash = usr.PasswordHash
	}
	return *orig, nil
}

func (repo *userRepository) DeleteUsersByID(_ context.Context, role string, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		if usr, ok := repo.db.rows[id]; ok && usr.Role == role {
			delete(repo.db.rows, id)
		}
	}
	return nil
}
