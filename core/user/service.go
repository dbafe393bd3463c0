package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/gbswdev/snackbar/core"
)

var (
	ErrNotFound = errors.New("user not found")
	ErrIDExists = errors.New("a user with this id already exists")

	// ErrInvalidPassword is returned on a failed password check.
	ErrInvalidPassword = errors.New("invalid password")
)

type (
	Repository interface {
		CheckIDUniqueness(ctx context.Context, id string) error
		CreateUser(ctx context.Context, usr User) (User, error)
		// QueryUsersByRole returns users of the given role sorted by login id.
		QueryUsersByRole(ctx context.Context, role string) ([]User, error)
		GetUser(ctx context.Context, role, id string) (User, error)
		// UpdateUser only saves set fields; a nil PasswordHash keeps the stored one.
		UpdateUser(ctx context.Context, usr User) (User, error)
		DeleteUsersByID(ctx context.Context, role string, ids ...string) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

func (svc *Service) CheckIDUniqueness(id string) error {
	if err := svc.repo.CheckIDUniqueness(context.Background(), id); err != nil {
		if errors.Is(err, ErrIDExists) {
			return core.NewValidationError(err, core.FieldError{Field: "id", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, role string, nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		ID:         nu.ID,
		Role:       role,
		Name:       nu.Name,
		Category:   nu.Category,
		Grade:      nu.Grade,
		Number:     nu.Number,
		Department: nu.Department,
		Email:      nu.Email,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	pwd := nu.Password
	if pwd == "" {
		pwd = core.Conf.DefaultPassword
	}
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *Service) Query(ctx context.Context, role string) ([]User, error) {
	return svc.repo.QueryUsersByRole(ctx, role)
}

func (svc *Service) Get(ctx context.Context, role, id string) (User, error) {
	return svc.repo.GetUser(ctx, role, core.CleanString(id, true /* lower */))
}

func (svc *Service) Update(ctx context.Context, role, id string, uu UpdateUser) (User, error) {
	usr := User{
		ID:         core.CleanString(id, true /* lower */),
		Role:       role,
		Name:       uu.Name,
		Category:   uu.Category,
		Department: uu.Department,
		Email:      uu.Email,
		UpdatedAt:  time.Now().UTC(),
	}
	if uu.Grade != nil {
		usr.Grade = *uu.Grade
	}
	if uu.Number != nil {
		usr.Number = *uu.Number
	}
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *Service) Delete(ctx context.Context, role string, ids ...string) error {
	return svc.repo.DeleteUsersByID(ctx, role, ids...)
}

// Authenticate looks the user up within the given role and checks the
// password. It distinguishes an unknown id (ErrNotFound) from a bad password
// (ErrInvalidPassword) so the API can answer 404 vs 401.
func (svc *Service) Authenticate(ctx context.Context, role, id, pwd string) (User, error) {
	usr, err := svc.Get(ctx, role, id)
	if err != nil {
		return User{}, err
	}
	if err := usr.CheckPassword(pwd); err != nil {
		return User{}, ErrInvalidPassword
	}
	return usr, nil
}

// ResetPassword sets the user's password back to the configured default and,
// when an email address is on file, sends a notice.
func (svc *Service) ResetPassword(ctx context.Context, role, id string) (User, error) {
	usr, err := svc.Get(ctx, role, id)
	if err != nil {
		return User{}, err
	}
	if err := usr.SetPassword(core.Conf.DefaultPassword); err != nil {
		return User{}, err
	}
	usr.UpdatedAt = time.Now().UTC()
	usr, err = svc.repo.UpdateUser(ctx, usr)
	if err != nil {
		return User{}, err
	}

	if usr.Email != "" {
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
			Subject: "Your password has been reset",
			Body: fmt.Sprintf(
				"Hi %s,\n\nYour %s password has been reset by a staff member.\n",
				usr.Name, core.Conf.AppName,
			),
		})
	}
	return usr, nil
}

// ChangePassword is the self-service flow; it requires the current password.
func (svc *Service) ChangePassword(ctx context.Context, role, id string, cp ChangePassword) (User, error) {
	usr, err := svc.Get(ctx, role, id)
	if err != nil {
		return User{}, err
	}
	if err := usr.CheckPassword(cp.Current); err != nil {
		return User{}, ErrInvalidPassword
	}
	if err := usr.SetPassword(cp.New); err != nil {
		return User{}, err
	}
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}
