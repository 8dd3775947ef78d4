package user

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID             string         `db:"id" json:"id"`
	Username       string         `db:"username" json:"username"`
	Email          string         `db:"email" json:"email"`
	PasswordHash   string         `db:"password_hash" json:"-"`
	Role           string         `db:"role" json:"role"`
	IsSubscribed   bool           `db:"is_subscribed" json:"isSubscribed"`
	PackageID      *string        `db:"package_id" json:"packageID"`
	BookedSessions pq.StringArray `db:"booked_sessions" json:"bookedSessions"`
	CreatedAt      time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updatedAt"`
}

// PublicProfile is what other users may see.
type PublicProfile struct {
	ID       string `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{ID: u.ID, Username: u.Username}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=50"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
