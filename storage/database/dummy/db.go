// Package dummydb provides in-memory repositories with the same behavior as
// the Mongo-backed ones. Used by tests and local development without a
// running database.
package dummydb

import (
	"sync"

	"github.com/gbswdev/snackbar/core/cheer"
	"github.com/gbswdev/snackbar/core/item"
	"github.com/gbswdev/snackbar/core/order"
	"github.com/gbswdev/snackbar/core/user"
)

type (
	itemTable struct {
		sync.RWMutex
		rows map[string]*item.Item
		seq  []string // insertion order, oldest first
	}

	orderTable struct {
		sync.RWMutex
		rows map[string]*order.Order
		seq  []string // insertion order, oldest first
	}

	userTable struct {
		sync.RWMutex
		rows map[string]*user.User
	}

	cheerTable struct {
		sync.RWMutex
		rows map[string]*cheer.Cheer
		seq  []string
	}

	DB struct {
		items  *itemTable
		orders *orderTable
		users  *userTable
		cheers *cheerTable
	}
)

func Open() *DB {
	return &DB{
		items:  &itemTable{rows: make(map[string]*item.Item)},
		orders: &orderTable{rows: make(map[string]*order.Order)},
		users:  &userTable{rows: make(map[string]*user.User)},
		cheers: &cheerTable{rows: make(map[string]*cheer.Cheer)},
	}
}
