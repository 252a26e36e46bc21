package jwt

import (
	"errors"
	"testing"
	"time"

	"mentor-match/internal/domain/user"
)

func newTestService(now time.Time) *HMACService {
	s := NewHMACService("test-secret", "mentor-mentee-app", "mentor-mentee-users", time.Hour)
	s.now = func() time.Time { return now }
	return s
}

func testUser() user.User {
	return user.User{
		ID:    42,
		Email: "mentor@example.com",
		Name:  "Jane",
		Role:  user.RoleMentor,
	}
}

func TestHMACService_IssueAndValidate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(now)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if c.Subject != "42" {
		t.Fatalf("expected subject 42, got %q", c.Subject)
	}
	id, err := c.UserID()
	if err != nil || id != 42 {
		t.Fatalf("expected user id 42, got %d (%v)", id, err)
	}
	if c.Email != "mentor@example.com" || c.Name != "Jane" || c.Role != "mentor" {
		t.Fatalf("unexpected claims: %+v", c)
	}
	if c.Issuer != "mentor-mentee-app" {
		t.Fatalf("unexpected issuer %q", c.Issuer)
	}
	if len(c.Audience) != 1 || c.Audience[0] != "mentor-mentee-users" {
		t.Fatalf("unexpected audience %v", c.Audience)
	}
	if c.ID != "42-1748779200" {
		t.Fatalf("unexpected jti %q", c.ID)
	}
	if got := c.ExpiresAt.Time; !got.Equal(now.Add(time.Hour)) {
		t.Fatalf("expected expiry %v, got %v", now.Add(time.Hour), got)
	}
}

func TestHMACService_Validate_Expired(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(issuedAt)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }

	_, err = svc.Validate(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_Validate_WrongSecret(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestService(now)

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := NewHMACService("other-secret", "mentor-mentee-app", "mentor-mentee-users", time.Hour)
	other.now = func() time.Time { return now }

	_, err = other.Validate(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHMACService_Validate_Garbage(t *testing.T) {
	svc := newTestService(time.Now())

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Validate(tok); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("token %q: expected ErrTokenInvalid, got %v", tok, err)
		}
	}
}

func TestHMACService_Validate_BadRole(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(now)

	u := testUser()
	u.Role = "admin"
	token, err := svc.Issue(u)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Validate(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestClaims_UserID_Invalid(t *testing.T) {
	for _, sub := range []string{"", "abc", "0", "-5"} {
		c := Claims{}
		c.Subject = sub
		if _, err := c.UserID(); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("subject %q: expected ErrTokenInvalid, got %v", sub, err)
		}
	}
}
