package item

import (
	"github.com/gbswdev/snackbar/core"
)

// Item types
const (
	TypeDrink = "drink"
	TypeSnack = "snack"
	TypeRamen = "ramen"
)

// Item is a snack-bar menu entry. Mutable by staff only.
type Item struct {
	ID    string `json:"id" bson:"_id,omitempty"`
	Name  string `json:"name" bson:"name"`
	Type  string `json:"type" bson:"type"`
	Image string `json:"image" bson:"image"`
	Stock bool   `json:"stock" bson:"stock"`
}

// NewItem contains information needed to create a new Item.
type NewItem struct {
	Name  string `json:"name" validate:"required"`
	Type  string `json:"type" validate:"required,oneof=drink snack ramen"`
	Image string `json:"image" validate:"omitempty,url"`
	Stock *bool  `json:"stock"`
}

func (ni *NewItem) Validate() error {
	ni.Name = core.CleanString(ni.Name)
	ni.Type = core.CleanString(ni.Type, true /* lower */)
	return core.Validate.Struct(ni)
}

// UpdateItem defines what information may be provided to modify an existing Item.
type UpdateItem struct {
	Name  string `json:"name"`
	Type  string `json:"type" validate:"omitempty,oneof=drink snack ramen"`
	Image string `json:"image" validate:"omitempty,url"`
	Stock *bool  `json:"stock"`
}

func (ui *UpdateItem) Validate(orig Item) error {
	name := core.CleanString(ui.Name)
	if name != "" {
		ui.Name = name
	} else {
		ui.Name = orig.Name
	}

	typ := core.CleanString(ui.Type, true /* lower */)
	if typ != "" {
		ui.Type = typ
	} else {
		ui.Type = orig.Type
	}

	if ui.Image == "" {
		ui.Image = orig.Image
	}
	return core.Validate.Struct(ui)
}
