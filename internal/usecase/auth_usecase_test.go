package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"mentor-match/internal/domain/user"
	"mentor-match/internal/pkg/jwt"
)

// mockUserRepo is an in-memory user.Repository shared by the auth and
// profile tests.
type mockUserRepo struct {
	users  map[int64]user.User
	skills map[int64][]string
	nextID int64
	err    error

	lastUpdate       user.ProfileUpdate
	lastUpdateSkills []string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:  make(map[int64]user.User),
		skills: make(map[int64][]string),
		nextID: 1,
	}
}

func (m *mockUserRepo) add(u user.User, skills []string) int64 {
	id := m.nextID
	m.nextID++
	u.ID = id
	m.users[id] = u
	if skills != nil {
		m.skills[id] = skills
	}
	return id
}

func (m *mockUserRepo) CreateWithSkills(_ context.Context, u user.User, skills []string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return 0, user.ErrEmailTaken
		}
	}
	return m.add(u, skills), nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, id int64, upd user.ProfileUpdate, skills []string) error {
	if m.err != nil {
		return m.err
	}
	u, ok := m.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Name = upd.Name
	u.Bio = upd.Bio
	u.ProfileImage = upd.Image
	m.users[id] = u
	m.lastUpdate = upd
	m.lastUpdateSkills = skills
	if skills != nil {
		m.skills[id] = skills
	}
	return nil
}

func (m *mockUserRepo) ListSkills(_ context.Context, userID int64) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.skills[userID]
	if !ok {
		return []string{}, nil
	}
	return s, nil
}

func (m *mockUserRepo) GetImage(_ context.Context, id int64, role user.Role) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok || u.Role != role {
		return nil, user.ErrNotFound
	}
	return u.ProfileImage, nil
}

type fakeJWT struct {
	token string
	err   error
}

func (f *fakeJWT) Issue(user.User) (string, error)    { return f.token, f.err }
func (f *fakeJWT) Validate(string) (jwt.Claims, error) { return jwt.Claims{}, f.err }

// fakeCache records cache traffic for assertions.
type fakeCache struct {
	store    map[string][]byte
	sets     int
	gets     int
	deletes  []string
	lastJSON any
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	f.gets++
	b, ok := f.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.sets++
	f.store[key] = b
	f.lastJSON = value
	return nil
}

func (f *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	f.deletes = append(f.deletes, pattern)
	return nil
}

func TestAuth_Signup_Validation(t *testing.T) {
	uc := NewAuthUsecase(newMockUserRepo(), &fakeJWT{token: "t"}, nil)

	cases := []struct {
		name string
		in   SignupInput
		want error
	}{
		{"missing email", SignupInput{Password: "p", Name: "A", Role: "mentor"}, ErrMissingFields},
		{"missing password", SignupInput{Email: "a@b.c", Name: "A", Role: "mentor"}, ErrMissingFields},
		{"missing name", SignupInput{Email: "a@b.c", Password: "p", Role: "mentor"}, ErrMissingFields},
		{"missing role", SignupInput{Email: "a@b.c", Password: "p", Name: "A"}, ErrMissingFields},
		{"bad role", SignupInput{Email: "a@b.c", Password: "p", Name: "A", Role: "admin"}, ErrInvalidRole},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Signup(context.Background(), tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuth_Signup_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	repo.add(user.User{Email: "a@b.c", Role: user.RoleMentee}, nil)
	uc := NewAuthUsecase(repo, &fakeJWT{token: "t"}, nil)

	_, err := uc.Signup(context.Background(), SignupInput{Email: "a@b.c", Password: "p", Name: "A", Role: "mentee"})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestAuth_Signup_MentorKeepsSkillsAndBustsCache(t *testing.T) {
	repo := newMockUserRepo()
	cache := newFakeCache()
	uc := NewAuthUsecase(repo, &fakeJWT{token: "t"}, cache)

	id, err := uc.Signup(context.Background(), SignupInput{
		Email:    "m@b.c",
		Password: "p",
		Name:     "M",
		Role:     "mentor",
		Skills:   []string{"go", "sql"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	skills, _ := repo.ListSkills(context.Background(), id)
	if len(skills) != 2 {
		t.Fatalf("expected 2 skills, got %v", skills)
	}
	if len(cache.deletes) != 1 {
		t.Fatalf("expected one cache invalidation, got %v", cache.deletes)
	}

	stored := repo.users[id]
	if stored.PasswordHash == "p" || stored.PasswordHash == "" {
		t.Fatalf("password stored without hashing")
	}
}

func TestAuth_Signup_MenteeDropsSkills(t *testing.T) {
	repo := newMockUserRepo()
	cache := newFakeCache()
	uc := NewAuthUsecase(repo, &fakeJWT{token: "t"}, cache)

	id, err := uc.Signup(context.Background(), SignupInput{
		Email:    "n@b.c",
		Password: "p",
		Name:     "N",
		Role:     "mentee",
		Skills:   []string{"go"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, ok := repo.skills[id]; ok {
		t.Fatalf("mentee signup must not store skills")
	}
	if len(cache.deletes) != 0 {
		t.Fatalf("mentee signup must not touch the mentor cache")
	}
}

func TestAuth_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	repo := newMockUserRepo()
	repo.add(user.User{Email: "a@b.c", PasswordHash: string(hash), Name: "A", Role: user.RoleMentee}, nil)
	uc := NewAuthUsecase(repo, &fakeJWT{token: "signed"}, nil)

	token, err := uc.Login(context.Background(), LoginInput{Email: "a@b.c", Password: "secret"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if token != "signed" {
		t.Fatalf("expected issued token, got %q", token)
	}
}

func TestAuth_Login_Failures(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)

	repo := newMockUserRepo()
	repo.add(user.User{Email: "a@b.c", PasswordHash: string(hash), Role: user.RoleMentee}, nil)
	uc := NewAuthUsecase(repo, &fakeJWT{token: "signed"}, nil)

	cases := []struct {
		name string
		in   LoginInput
		want error
	}{
		{"missing email", LoginInput{Password: "secret"}, ErrMissingFields},
		{"missing password", LoginInput{Email: "a@b.c"}, ErrMissingFields},
		{"unknown email", LoginInput{Email: "x@b.c", Password: "secret"}, ErrInvalidCredentials},
		{"wrong password", LoginInput{Email: "a@b.c", Password: "nope"}, ErrInvalidCredentials},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Login(context.Background(), tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
