package user

import "time"

type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
)

func (r Role) Valid() bool {
	return r == RoleMentor || r == RoleMentee
}

// User is the identity record shared by mentors and mentees. Role is
// fixed at signup.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	Bio          string
	ProfileImage []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
