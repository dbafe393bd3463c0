package cheer

import (
	"time"

	"github.com/gbswdev/snackbar/core"
)

// Target audiences
const (
	TargetStudent = "student"
	TargetTeacher = "teacher"
)

// Cheer is an append-only encouragement message shown on the home screens.
type Cheer struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Message   string    `json:"message" bson:"message"`
	Target    string    `json:"target" bson:"target"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// NewCheer contains information needed to post a new Cheer.
type NewCheer struct {
	Message string `json:"message" validate:"required"`
	Target  string `json:"target" validate:"required,oneof=student teacher"`
}

func (nc *NewCheer) Validate() error {
	nc.Message = core.CleanString(nc.Message)
	nc.Target = core.CleanString(nc.Target, true /* lower */)
	return core.Validate.Struct(nc)
}

// CreatedEvent is broadcast once per posted message.
type CreatedEvent struct {
	Cheer Cheer
}

func (e CreatedEvent) EventName() string      { return "newCheer" }
func (e CreatedEvent) EventData() interface{} { return e.Cheer }
