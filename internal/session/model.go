package session

import (
	"time"

	"github.com/lib/pq"
)

type Session struct {
	ID           string         `db:"id" json:"id"`
	GymID        string         `db:"gym_id" json:"gymId"`
	Name         string         `db:"name" json:"name"`
	Description  string         `db:"description" json:"description"`
	Type         string         `db:"type" json:"type"`
	TrainerName  string         `db:"trainer_name" json:"trainerName"`
	DateTime     time.Time      `db:"date_time" json:"dateTime"`
	Capacity     int            `db:"capacity" json:"capacity"`
	Participants pq.StringArray `db:"participants" json:"participants"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updatedAt"`
}

func (s *Session) IsFull() bool {
	return len(s.Participants) >= s.Capacity
}

func (s *Session) HasParticipant(userID string) bool {
	for _, p := range s.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

type CreateSessionRequest struct {
	GymID       string    `json:"gymId" binding:"required,uuid"`
	Name        string    `json:"name" binding:"required,max=255"`
	Description string    `json:"description"`
	Type        string    `json:"type" binding:"max=100"`
	TrainerName string    `json:"trainerName" binding:"max=255"`
	DateTime    time.Time `json:"dateTime" binding:"required"`
	Capacity    int       `json:"capacity" binding:"required,gt=0"`
}

type UpdateSessionRequest struct {
	GymID       *string    `json:"gymId" binding:"omitempty,uuid"`
	Name        *string    `json:"name" binding:"omitempty,max=255"`
	Description *string    `json:"description"`
	Type        *string    `json:"type" binding:"omitempty,max=100"`
	TrainerName *string    `json:"trainerName" binding:"omitempty,max=255"`
	DateTime    *time.Time `json:"dateTime"`
	Capacity    *int       `json:"capacity" binding:"omitempty,gt=0"`
}
