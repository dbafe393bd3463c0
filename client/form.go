package client

import (
	"context"

	"github.com/pkg/errors"

	"github.com/gbswdev/snackbar/core/item"
	"github.com/gbswdev/snackbar/core/order"
)

// Quantity bounds enforced on the form.
const (
	minQuantity = 1
	maxQuantity = 10
)

var ErrNoSelection = errors.New("no item selected")

// OrderForm is the order submission flow: pick an item, set a quantity and
// submit. On success the selection is cleared; on failure it is kept so the
// user can retry.
type OrderForm struct {
	cli       *Client
	requester string
	role      string

	selected *item.Item
	quantity int
}

func NewOrderForm(cli *Client, requesterName, role string) *OrderForm {
	return &OrderForm{cli: cli, requester: requesterName, role: role}
}

// Select picks an item and resets the quantity to 1.
func (f *OrderForm) Select(it item.Item) {
	f.selected = &it
	f.quantity = minQuantity
}

// SetQuantity clamps n into [1, 10].
func (f *OrderForm) SetQuantity(n int) {
	if n < minQuantity {
		n = minQuantity
	} else if n > maxQuantity {
		n = maxQuantity
	}
	f.quantity = n
}

func (f *OrderForm) Selected() (item.Item, bool) {
	if f.selected == nil {
		return item.Item{}, false
	}
	return *f.selected, true
}

func (f *OrderForm) Quantity() int { return f.quantity }

// Submit sends the current selection. Double submits produce two distinct
// orders; there is no idempotency key.
func (f *OrderForm) Submit(ctx context.Context) (order.Order, error) {
	if f.selected == nil {
		return order.Order{}, ErrNoSelection
	}

	ord, err := f.cli.SubmitOrder(ctx, order.NewOrder{
		StudentName: f.requester,
		UserJob:     f.role,
		Menu:        f.selected.Name,
		Quantity:    f.quantity,
		Image:       f.selected.Image,
	})
	if err != nil {
		return order.Order{}, err
	}

	f.selected = nil
	f.quantity = 0
	return ord, nil
}
