package order

import (
	"context"
	"errors"
	"time"

	"github.com/gbswdev/snackbar/core/bus"
)

var (
	ErrNotFound = errors.New("order not found")

	// ErrStatusFinal is returned when a transition is attempted on an order
	// that already left the pending state. There is no reset path.
	ErrStatusFinal = errors.New("order status already finalized")
)

const popularLimit = 3

type (
	Repository interface {
		CreateOrder(ctx context.Context, ord Order) (Order, error)
		// QueryAllOrders returns all orders, newest first.
		QueryAllOrders(ctx context.Context) ([]Order, error)
		// FilterOrders applies an exact match on QueryFilter.StudentName, newest first.
		FilterOrders(ctx context.Context, filter QueryFilter) ([]Order, error)
		GetOrderByID(ctx context.Context, id string) (Order, error)
		// SetOrderStatus transitions an order to `status` only while it is still
		// pending; it returns ErrStatusFinal when the order was already decided
		// and ErrNotFound when no such order exists. The conditional write is
		// what keeps concurrent staff decisions from silently overwriting each
		// other.
		SetOrderStatus(ctx context.Context, id, status string, at time.Time) (Order, error)
		// PopularMenus sums quantities per menu name and returns the top `limit`
		// menus by total quantity, descending.
		PopularMenus(ctx context.Context, limit int) ([]MenuCount, error)
	}

	Service struct {
		repo   Repository
		broker *bus.Broker
	}
)

func NewService(repo Repository, broker *bus.Broker) *Service {
	return &Service{repo: repo, broker: broker}
}

// Create persists a new pending order and broadcasts it. The broadcast happens
// after the write so every subscriber sees an order's newOrder before any of
// its orderUpdated events.
func (svc *Service) Create(ctx context.Context, no NewOrder) (Order, error) {
	now := time.Now().UTC()
	ord := Order{
		StudentName: no.StudentName,
		UserJob:     no.UserJob,
		Menu:        no.Menu,
		Quantity:    no.Quantity,
		Image:       no.Image,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	ord, err := svc.repo.CreateOrder(ctx, ord)
	if err != nil {
		return Order{}, err
	}
	svc.broker.Publish(CreatedEvent{Order: ord})
	return ord, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Order, error) {
	return svc.repo.QueryAllOrders(ctx)
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Order, error) {
	filter.Clean()
	if filter.IsEmpty() {
		return svc.repo.QueryAllOrders(ctx)
	}
	return svc.repo.FilterOrders(ctx, filter)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Order, error) {
	return svc.repo.GetOrderByID(ctx, id)
}

// UpdateStatus applies a staff accept/reject decision and broadcasts the result.
func (svc *Service) UpdateStatus(ctx context.Context, id string, su StatusUpdate) (Order, error) {
	ord, err := svc.repo.SetOrderStatus(ctx, id, su.Status, time.Now().UTC())
	if err != nil {
		return Order{}, err
	}
	svc.broker.Publish(UpdatedEvent{Order: ord})
	return ord, nil
}

// Cancel soft-cancels a pending order: the record is kept with status
// cancelled and an orderUpdated event is broadcast.
func (svc *Service) Cancel(ctx context.Context, id string) (Order, error) {
	ord, err := svc.repo.SetOrderStatus(ctx, id, StatusCancelled, time.Now().UTC())
	if err != nil {
		return Order{}, err
	}
	svc.broker.Publish(UpdatedEvent{Order: ord})
	return ord, nil
}

// Popular returns the top-3 menus by total ordered quantity.
func (svc *Service) Popular(ctx context.Context) ([]MenuCount, error) {
	return svc.repo.PopularMenus(ctx, popularLimit)
}
