package order

import (
	"time"

	"github.com/gbswdev/snackbar/core"
)

// Order statuses. Transitions are one-shot: pending → accepted|rejected|cancelled,
// never back.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// IsTerminalStatus reports whether s is a final order status.
func IsTerminalStatus(s string) bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Order is a snack request submitted by a student. Menu and Image are
// denormalized copies of the Item fields at submission time; there is no
// foreign key back to the Item.
type Order struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	StudentName string    `json:"studentName" bson:"studentName"`
	UserJob     string    `json:"userJob" bson:"userJob"`
	Menu        string    `json:"menu" bson:"menu"`
	Quantity    int       `json:"quantity" bson:"quantity"`
	Image       string    `json:"image" bson:"image"`
	Status      string    `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"` // UTC
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"` // UTC
}

// NewOrder contains information needed to submit a new Order.
type NewOrder struct {
	StudentName string `json:"studentName" validate:"required"`
	UserJob     string `json:"userJob" validate:"required"`
	Menu        string `json:"menu" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
	Image       string `json:"image" validate:"omitempty,url"`
}

func (no *NewOrder) Validate() error {
	no.StudentName = core.CleanString(no.StudentName)
	no.UserJob = core.CleanString(no.UserJob)
	no.Menu = core.CleanString(no.Menu)
	return core.Validate.Struct(no)
}

// StatusUpdate is the staff accept/reject decision. Cancellation goes through
// its own endpoint and is not a valid value here.
type StatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

func (su *StatusUpdate) Validate() error {
	su.Status = core.CleanString(su.Status, true /* lower */)
	return core.Validate.Struct(su)
}

type QueryFilter struct {
	StudentName string `query:"studentName"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.StudentName == ""
}

func (qf *QueryFilter) Clean() {
	qf.StudentName = core.CleanString(qf.StudentName)
}

// MenuCount is one row of the popular-menus aggregation. The field names
// mirror the aggregation output consumed by the clients.
type MenuCount struct {
	Menu          string `json:"_id" bson:"_id"`
	TotalQuantity int    `json:"totalQuantity" bson:"totalQuantity"`
}

// Events published on the notification bus.

// CreatedEvent is broadcast once per successful order submission.
type CreatedEvent struct {
	Order Order
}

func (e CreatedEvent) EventName() string      { return "newOrder" }
func (e CreatedEvent) EventData() interface{} { return e.Order }

// UpdatedEvent is broadcast on every status change, cancellation included.
type UpdatedEvent struct {
	Order Order
}

func (e UpdatedEvent) EventName() string      { return "orderUpdated" }
func (e UpdatedEvent) EventData() interface{} { return e.Order }
