package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gbswdev/snackbar/core"
)

// Roles. The original app kept students and teachers in two near-identical
// collections; here they are one tagged entity sharing the login/password
// machinery, with a few role-specific fields.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

var AllRoles = []string{RoleStudent, RoleTeacher}

func IsValidRole(role string) bool {
	return role == RoleStudent || role == RoleTeacher
}

type User struct {
	ID         string `json:"id" bson:"_id"` // login id, e.g. "s1002"
	Role       string `json:"role" bson:"role"`
	Name       string `json:"name" bson:"name"`
	Category   string `json:"category" bson:"category"`
	Grade      int    `json:"grade,omitempty" bson:"grade,omitempty"`           // students only
	Number     int    `json:"number,omitempty" bson:"number,omitempty"`         // students only
	Department string `json:"department,omitempty" bson:"department,omitempty"` // teachers only
	Email      string `json:"email,omitempty" bson:"email,omitempty"`

	PasswordHash []byte    `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time `json:"created_at" bson:"createdAt"` // UTC
	UpdatedAt    time.Time `json:"updated_at" bson:"updatedAt"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsStudent() bool { return u.Role == RoleStudent }
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }

// NewUser contains information needed to create a new User.
// An empty Password falls back to the configured default ("1234").
type NewUser struct {
	ID         string `json:"id" validate:"required,loginid"`
	Name       string `json:"name" validate:"required"`
	Category   string `json:"category"`
	Grade      int    `json:"grade" validate:"omitempty,min=1,max=3"`
	Number     int    `json:"number" validate:"omitempty,min=1"`
	Department string `json:"department"`
	Email      string `json:"email" validate:"omitempty,email"`
	Password   string `json:"password"`
}

func (nu *NewUser) Validate(svc *Service) error {
	nu.ID = core.CleanString(nu.ID, true /* lower */)
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := core.Validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckIDUniqueness(nu.ID)
}

// UpdateUser defines what profile fields may be modified on an existing User.
// Passwords never travel through here; they have their own flows.
type UpdateUser struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	Grade      *int   `json:"grade" validate:"omitempty,min=1,max=3"`
	Number     *int   `json:"number" validate:"omitempty,min=1"`
	Department string `json:"department"`
	Email      string `json:"email" validate:"omitempty,email"`
}

func (uu *UpdateUser) Validate(orig User) error {
	name := core.CleanString(uu.Name)
	if name != "" {
		uu.Name = name
	} else {
		uu.Name = orig.Name
	}

	if uu.Category == "" {
		uu.Category = orig.Category
	}
	if uu.Department == "" {
		uu.Department = orig.Department
	}

	email := core.CleanString(uu.Email, true /* lower */)
	if email != "" {
		uu.Email = email
	} else {
		uu.Email = orig.Email
	}

	return core.Validate.Struct(uu)
}

// ChangePassword is the self-service password change; Current must match the
// stored password.
type ChangePassword struct {
	Current string `json:"current" validate:"required"`
	New     string `json:"new" validate:"required,min=4"`
}

func (cp *ChangePassword) Validate() error { return core.Validate.Struct(cp) }
