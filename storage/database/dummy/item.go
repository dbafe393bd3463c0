package dummydb

import (
	"context"

	"github.com/google/uuid"

	"github.com/gbswdev/snackbar/core/item"
)

type itemRepository struct {
	db *itemTable
}

var _ item.Repository = (*itemRepository)(nil) // interface compliance check

func NewItemRepository(db *DB) item.Repository {
	return &itemRepository{db: db.items}
}

func (repo *itemRepository) CreateItem(_ context.Context, it item.Item) (item.Item, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	it.ID = uuid.New().String()
	repo.db.rows[it.ID] = &it
	repo.db.seq = append(repo.db.seq, it.ID)
	return it, nil
}

func (repo *itemRepository) QueryAllItems(_ context.Context) ([]item.Item, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	items := make([]item.Item, 0, len(repo.db.seq))
	for _, id := range repo.db.seq {
		if it, ok := repo.db.rows[id]; ok {
			items = append(items, *it)
		}
	}
	return items, nil
}

func (repo *itemRepository) GetItemByID(_ context.Context, id string) (item.Item, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if it, ok := repo.db.rows[id]; ok {
		return *it, nil
	}
	return item.Item{}, item.ErrNotFound
}

func (repo *itemRepository) UpdateItem(_ context.Context, it item.Item, stock *bool) (item.Item, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.rows[it.ID]
	if !ok {
		return item.Item{}, item.ErrNotFound
	}
	orig.Name = it.Name
	orig.Type = it.Type
	orig.Image = it.Image
	if stock != nil {
		orig.Stock = *stock
	}
	return *orig, nil
}

func (repo *itemRepository) DeleteItemsByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.rows, id)
	}
	return nil
}
