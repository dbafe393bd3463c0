package order_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gbswdev/snackbar/core/bus"
	"github.com/gbswdev/snackbar/core/order"
	dummydb "github.com/gbswdev/snackbar/storage/database/dummy"
)

func setup() (*order.Service, *bus.Broker) {
	broker := bus.NewBroker()
	return order.NewService(dummydb.NewOrderRepository(dummydb.Open()), broker), broker
}

func drain(sub *bus.Subscription) []bus.Event {
	var evts []bus.Event
	for {
		select {
		case evt := <-sub.C:
			evts = append(evts, evt)
		default:
			return evts
		}
	}
}

func create(t *testing.T, svc *order.Service, studentName, menu string, qty int) order.Order {
	ord, err := svc.Create(context.Background(), order.NewOrder{
		StudentName: studentName,
		UserJob:     "student",
		Menu:        menu,
		Quantity:    qty,
	})
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}
	return ord
}

func TestService_Create(t *testing.T) {
	svc, broker := setup()
	ctx := context.Background()

	sub := broker.Subscribe()
	defer sub.Close()

	ord := create(t, svc, "홍길동", "콜라", 2)
	assert.NotEmpty(t, ord.ID)
	assert.Equal(t, order.StatusPending, ord.Status)
	assert.False(t, ord.CreatedAt.IsZero())

	evts := drain(sub)
	if assert.Len(t, evts, 1, "exactly one newOrder per submission") {
		assert.Equal(t, "newOrder", evts[0].EventName())
		evtOrd := evts[0].EventData().(order.Order)
		assert.Equal(t, ord.ID, evtOrd.ID)
		assert.Equal(t, "홍길동", evtOrd.StudentName)
		assert.Equal(t, 2, evtOrd.Quantity)
	}

	got, err := svc.GetByID(ctx, ord.ID)
	assert.NoError(t, err)
	assert.Equal(t, ord, got)
}

func TestService_UpdateStatus(t *testing.T) {
	svc, broker := setup()
	ctx := context.Background()

	ord := create(t, svc, "홍길동", "콜라", 2)

	sub := broker.Subscribe()
	defer sub.Close()

	got, err := svc.UpdateStatus(ctx, ord.ID, order.StatusUpdate{Status: order.StatusAccepted})
	assert.NoError(t, err)
	assert.Equal(t, order.StatusAccepted, got.Status)

	evts := drain(sub)
	if assert.Len(t, evts, 1) {
		assert.Equal(t, "orderUpdated", evts[0].EventName())
	}

	// decided orders stay decided; no event goes out for the failed attempt
	_, err = svc.UpdateStatus(ctx, ord.ID, order.StatusUpdate{Status: order.StatusRejected})
	assert.Equal(t, order.ErrStatusFinal, err)
	assert.Empty(t, drain(sub))

	_, err = svc.UpdateStatus(ctx, "nope", order.StatusUpdate{Status: order.StatusAccepted})
	assert.Equal(t, order.ErrNotFound, err)
}

func TestService_Cancel(t *testing.T) {
	svc, broker := setup()
	ctx := context.Background()

	ord := create(t, svc, "홍길동", "콜라", 2)

	sub := broker.Subscribe()
	defer sub.Close()

	got, err := svc.Cancel(ctx, ord.ID)
	assert.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, got.Status)

	evts := drain(sub)
	if assert.Len(t, evts, 1) {
		assert.Equal(t, "orderUpdated", evts[0].EventName())
		assert.Equal(t, order.StatusCancelled, evts[0].EventData().(order.Order).Status)
	}

	// soft-cancel keeps the record
	kept, err := svc.GetByID(ctx, ord.ID)
	assert.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, kept.Status)

	_, err = svc.Cancel(ctx, ord.ID)
	assert.Equal(t, order.ErrStatusFinal, err)
}

func TestService_Filter(t *testing.T) {
	svc, _ := setup()
	ctx := context.Background()

	ord1 := create(t, svc, "홍길동", "콜라", 2)
	ord2 := create(t, svc, "이몽룡", "사이다", 1)
	ord3 := create(t, svc, "홍길동", "신라면", 1)

	all, err := svc.Filter(ctx, order.QueryFilter{})
	assert.NoError(t, err)
	assert.Equal(t, []order.Order{ord3, ord2, ord1}, all, "newest first")

	mine, err := svc.Filter(ctx, order.QueryFilter{StudentName: " 홍길동 "})
	assert.NoError(t, err)
	assert.Equal(t, []order.Order{ord3, ord1}, mine, "filter is cleaned and exact")
}

func TestService_Popular(t *testing.T) {
	svc, _ := setup()
	ctx := context.Background()

	create(t, svc, "홍길동", "콜라", 2)
	create(t, svc, "이몽룡", "콜라", 3)
	create(t, svc, "홍길동", "콜라", 1)
	create(t, svc, "이몽룡", "사이다", 5)
	create(t, svc, "홍길동", "신라면", 4)
	create(t, svc, "이몽룡", "새우깡", 1)

	counts, err := svc.Popular(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []order.MenuCount{
		{Menu: "콜라", TotalQuantity: 6},
		{Menu: "사이다", TotalQuantity: 5},
		{Menu: "신라면", TotalQuantity: 4},
	}, counts)
}
