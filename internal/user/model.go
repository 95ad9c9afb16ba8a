package user

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID        string         `json:"id"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	Password  string         `json:"password,omitempty"`
	Premium   bool           `json:"premium"`
	Followers pq.StringArray `json:"followers"`
	Following pq.StringArray `json:"following"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Sanitized returns a copy safe to hand to callers: the password hash is
// stripped and the follower arrays are never nil.
func (u *User) Sanitized() *User {
	c := *u
	c.Password = ""
	if c.Followers == nil {
		c.Followers = pq.StringArray{}
	}
	if c.Following == nil {
		c.Following = pq.StringArray{}
	}
	return &c
}

type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Premium  bool   `json:"premium"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Premium  *bool   `json:"premium"`
}

type FollowRequest struct {
	TargetEmail string `json:"targetEmail"`
	Follow      bool   `json:"follow"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}
