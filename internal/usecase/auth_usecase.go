package usecase

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"mentor-match/internal/domain/user"
	"mentor-match/internal/pkg/jwt"
)

var (
	ErrMissingFields          = errors.New("missing required fields")
	ErrInvalidRole            = errors.New("invalid role")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)

type SignupInput struct {
	Email    string
	Password string
	Name     string
	Role     string
	Bio      string
	Skills   []string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthUsecase interface {
	Signup(ctx context.Context, in SignupInput) (int64, error)
	Login(ctx context.Context, in LoginInput) (string, error)
}

type Auth struct {
	users user.Repository
	jwt   jwt.Service
	cache MentorCache
}

func NewAuthUsecase(users user.Repository, jwtSvc jwt.Service, cache MentorCache) *Auth {
	return &Auth{users: users, jwt: jwtSvc, cache: cache}
}

func (u *Auth) Signup(ctx context.Context, in SignupInput) (int64, error) {
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || in.Password == "" || name == "" || in.Role == "" {
		return 0, ErrMissingFields
	}

	role := user.Role(in.Role)
	if !role.Valid() {
		return 0, ErrInvalidRole
	}

	exists, err := u.users.ExistsByEmail(ctx, email)
	if err != nil {
		return 0, ErrInternal
	}
	if exists {
		return 0, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, ErrInternal
	}

	// Skill tags only attach to mentors; a mentee payload carrying
	// skills has them dropped.
	var skills []string
	if role == user.RoleMentor {
		skills = in.Skills
	}

	id, err := u.users.CreateWithSkills(ctx, user.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Bio:          strings.TrimSpace(in.Bio),
	}, skills)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return 0, ErrEmailAlreadyRegistered
		}
		return 0, ErrInternal
	}

	if role == user.RoleMentor {
		invalidateMentorCache(ctx, u.cache)
	}

	return id, nil
}

// Login never distinguishes an unknown email from a wrong password.
func (u *Auth) Login(ctx context.Context, in LoginInput) (string, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return "", ErrMissingFields
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := u.jwt.Issue(usr)
	if err != nil {
		return "", ErrInternal
	}
	return token, nil
}
