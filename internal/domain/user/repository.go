package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type ProfileUpdate struct {
	Name  string
	Bio   string
	Image []byte
}

type Repository interface {
	// CreateWithSkills inserts the user and, for mentors, the given
	// skill names in a single transaction. Returns the generated id.
	CreateWithSkills(ctx context.Context, u User, skills []string) (int64, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// UpdateProfile overwrites name, bio and profile image and, when
	// skills is non-nil, replaces the full skill set transactionally.
	UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate, skills []string) error

	ListSkills(ctx context.Context, userID int64) ([]string, error)
	GetImage(ctx context.Context, id int64, role Role) ([]byte, error)
}
