package gymadmin

import (
	"time"

	"allyoucangym/internal/gym"

	"github.com/lib/pq"
)

type GymAdmin struct {
	ID           string         `db:"id" json:"id"`
	Username     string         `db:"username" json:"username"`
	Email        string         `db:"email" json:"email"`
	PasswordHash string         `db:"password_hash" json:"-"`
	Gyms         pq.StringArray `db:"gyms" json:"gyms"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updatedAt"`
}

// Profile is an admin with the managed gyms expanded.
type Profile struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Gyms     []gym.Gym `json:"gyms"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest accepts either the email or the username in Email.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Gyms     []string `json:"gyms"`
	Token    string   `json:"token"`
}

type AddGymRequest struct {
	GymID string `json:"gymId" binding:"required,uuid"`
}
