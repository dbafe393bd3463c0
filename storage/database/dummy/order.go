package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/gbswdev/snackbar/core/order"
)

type orderRepository struct {
	db *orderTable
}

var _ order.Repository = (*orderRepository)(nil) // interface compliance check

func NewOrderRepository(db *DB) order.Repository {
	return &orderRepository{db: db.orders}
}

// query returns all rows newest first. Callers must hold at least a read lock.
func (repo *orderRepository) query() []order.Order {
	orders := make([]order.Order, 0, len(repo.db.seq))
	for i := len(repo.db.seq) - 1; i >= 0; i-- {
		orders = append(orders, *repo.db.rows[repo.db.seq[i]])
	}
	return orders
}

func (repo *orderRepository) CreateOrder(_ context.Context, ord order.Order) (order.Order, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	ord.ID = uuid.New().String()
	repo.db.rows[ord.ID] = &ord
	repo.db.seq = append(repo.db.seq, ord.ID)
	return ord, nil
}

func (repo *orderRepository) QueryAllOrders(_ context.Context) ([]order.Order, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *orderRepository) FilterOrders(_ context.Context, filter order.QueryFilter) ([]order.Order, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	filtered := make([]order.Order, 0)
	for _, ord := range repo.query() {
		if ord.StudentName == filter.StudentName {
			filtered = append(filtered, ord)
		}
	}
	return filtered, nil
}

func (repo *orderRepository) GetOrderByID(_ context.Context, id string) (order.Order, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if ord, ok := repo.db.rows[id]; ok {
		return *ord, nil
	}
	return order.Order{}, order.ErrNotFound
}

func (repo *orderRepository) SetOrderStatus(_ context.Context, id, status string, at time.Time) (order.Order, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	ord, ok := repo.db.rows[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	if ord.Status != order.StatusPending {
		return order.Order{}, order.ErrStatusFinal
	}
	ord.Status = status
	ord.UpdatedAt = at
	return *ord, nil
}

func (repo *orderRepository) PopularMenus(_ context.Context, limit int) ([]order.MenuCount, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	totals := make(map[string]int)
	for _, ord := range repo.db.rows {
		totals[ord.Menu] += ord.Quantity
	}

	counts := make([]order.MenuCount, 0, len(totals))
	for menu, total := range totals {
		counts = append(counts, order.MenuCount{Menu: menu, TotalQuantity: total})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].TotalQuantity > counts[j].TotalQuantity })

	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts, nil
}
