package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mentor-match/internal/domain/user"
)

var ErrImageNotFound = errors.New("image not found")

// Profile is the API-facing view of a user. Skills is nil for mentees
// and always non-nil (possibly empty) for mentors.
type Profile struct {
	ID       int64
	Email    string
	Role     user.Role
	Name     string
	Bio      string
	ImageURL string
	Skills   []string
}

type UpdateProfileInput struct {
	ID    int64
	Name  string
	Bio   string
	Image []byte
	// Role, when set, must be a valid role name; it selects whether
	// Skills applies but never rewrites the stored role.
	Role string
	// Skills nil means "leave the skill set alone"; an empty non-nil
	// slice clears it.
	Skills []string
}

type UserUsecase interface {
	GetProfile(ctx context.Context, userID int64) (Profile, error)
	UpdateProfile(ctx context.Context, actorID int64, in UpdateProfileInput) (Profile, error)
	GetImage(ctx context.Context, role string, id int64) ([]byte, error)
}

type User struct {
	users user.Repository
	cache MentorCache
}

func NewUserUsecase(users user.Repository, cache MentorCache) *User {
	return &User{users: users, cache: cache}
}

func (u *User) GetProfile(ctx context.Context, userID int64) (Profile, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, ErrInternal
	}
	return u.buildProfile(ctx, usr)
}

func (u *User) UpdateProfile(ctx context.Context, actorID int64, in UpdateProfileInput) (Profile, error) {
	name := strings.TrimSpace(in.Name)
	if in.ID <= 0 || name == "" {
		return Profile{}, ErrInvalidInput
	}
	if in.Role != "" && !user.Role(in.Role).Valid() {
		return Profile{}, ErrInvalidRole
	}
	if in.ID != actorID {
		return Profile{}, ErrForbidden
	}

	usr, err := u.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, ErrInternal
	}

	effectiveRole := usr.Role
	if in.Role != "" {
		effectiveRole = user.Role(in.Role)
	}

	var skills []string
	if effectiveRole == user.RoleMentor && in.Skills != nil {
		skills = in.Skills
	}

	err = u.users.UpdateProfile(ctx, actorID, user.ProfileUpdate{
		Name:  name,
		Bio:   strings.TrimSpace(in.Bio),
		Image: in.Image,
	}, skills)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, ErrInternal
	}

	if usr.Role == user.RoleMentor {
		invalidateMentorCache(ctx, u.cache)
	}

	return u.GetProfile(ctx, actorID)
}

func (u *User) GetImage(ctx context.Context, role string, id int64) ([]byte, error) {
	r := user.Role(role)
	if !r.Valid() {
		return nil, ErrInvalidRole
	}
	if id <= 0 {
		return nil, ErrImageNotFound
	}

	img, err := u.users.GetImage(ctx, id, r)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, ErrInternal
	}
	if len(img) == 0 {
		return nil, ErrImageNotFound
	}
	return img, nil
}

func (u *User) buildProfile(ctx context.Context, usr user.User) (Profile, error) {
	p := Profile{
		ID:       usr.ID,
		Email:    usr.Email,
		Role:     usr.Role,
		Name:     usr.Name,
		Bio:      usr.Bio,
		ImageURL: profileImageURL(usr),
	}

	if usr.Role == user.RoleMentor {
		skills, err := u.users.ListSkills(ctx, usr.ID)
		if err != nil {
			return Profile{}, ErrInternal
		}
		if skills == nil {
			skills = []string{}
		}
		p.Skills = skills
	}

	return p, nil
}

func profileImageURL(usr user.User) string {
	if len(usr.ProfileImage) > 0 {
		return fmt.Sprintf("/api/images/%s/%d", usr.Role, usr.ID)
	}
	if usr.Role == user.RoleMentor {
		return mentorPlaceholderImage
	}
	return menteePlaceholderImage
}
