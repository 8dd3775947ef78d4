package gym

import (
	"time"

	"github.com/lib/pq"
)

type Gym struct {
	ID        string         `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	Location  string         `db:"location" json:"location"`
	Latitude  float64        `db:"latitude" json:"latitude"`
	Longitude float64        `db:"longitude" json:"longitude"`
	Rating    float64        `db:"rating" json:"rating"`
	Keywords  pq.StringArray `db:"keywords" json:"keywords"`
	Sessions  pq.StringArray `db:"sessions" json:"sessions"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time      `db:"updated_at" json:"updatedAt"`
}

type CreateGymRequest struct {
	Name      string   `json:"name" binding:"required,max=255"`
	Location  string   `json:"location" binding:"required,max=255"`
	Latitude  float64  `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude float64  `json:"longitude" binding:"gte=-180,lte=180"`
	Rating    float64  `json:"rating" binding:"gte=0,lte=5"`
	Keywords  []string `json:"keywords"`
}

type UpdateGymRequest struct {
	Name      *string   `json:"name" binding:"omitempty,max=255"`
	Location  *string   `json:"location" binding:"omitempty,max=255"`
	Latitude  *float64  `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude *float64  `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Rating    *float64  `json:"rating" binding:"omitempty,gte=0,lte=5"`
	Keywords  *[]string `json:"keywords"`
}

// FilterParams narrows the gym list. Coordinates only apply when both are set.
type FilterParams struct {
	SessionType string
	Latitude    *float64
	Longitude   *float64
	DistanceKm  *float64
}
