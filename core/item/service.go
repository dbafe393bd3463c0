package item

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("item not found")

type (
	Repository interface {
		CreateItem(ctx context.Context, it Item) (Item, error)
		QueryAllItems(ctx context.Context) ([]Item, error)
		GetItemByID(ctx context.Context, id string) (Item, error)
		UpdateItem(ctx context.Context, it Item, stock *bool) (Item, error)
		DeleteItemsByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ni NewItem) (Item, error) {
	it := Item{
		Name:  ni.Name,
		Type:  ni.Type,
		Image: ni.Image,
		Stock: true,
	}
	if ni.Stock != nil {
		it.Stock = *ni.Stock
	}
	return svc.repo.CreateItem(ctx, it)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Item, error) {
	return svc.repo.QueryAllItems(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Item, error) {
	return svc.repo.GetItemByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, ui UpdateItem) (Item, error) {
	it := Item{
		ID:    id,
		Name:  ui.Name,
		Type:  ui.Type,
		Image: ui.Image,
	}
	return svc.repo.UpdateItem(ctx, it, ui.Stock)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteItemsByID(ctx, ids...)
}
