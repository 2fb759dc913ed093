package users

import "context"

var (
	ErrNotFound  = errNotFound{}
	ErrDuplicate = errDuplicate{}
)

type errNotFound struct{}

func (errNotFound) Error() string { return "user not found" }

type errDuplicate struct{}

func (errDuplicate) Error() string { return "login id already taken" }

type Repo interface {
	Create(ctx context.Context, user User) error
	GetByLoginID(ctx context.Context, loginID string) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
}
