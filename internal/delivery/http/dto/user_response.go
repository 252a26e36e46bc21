package dto

// ProfileBody is the nested profile object inside user and mentor
// responses. Skills is present only for mentors; a mentor with no
// tags still serializes an empty list, so the field is a pointer
// rather than an omitempty slice.
type ProfileBody struct {
	Name     string    `json:"name"`
	Bio      string    `json:"bio"`
	ImageURL string    `json:"imageUrl"`
	Skills   *[]string `json:"skills,omitempty"`
}

type UserResponse struct {
	ID      int64       `json:"id"`
	Email   string      `json:"email"`
	Role    string      `json:"role"`
	Profile ProfileBody `json:"profile"`
}

type SignupResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
