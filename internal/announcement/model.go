package announcement

import "time"

type Announcement struct {
	ID        string    `db:"id" json:"id"`
	SessionID string    `db:"session_id" json:"sessionId"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type CreateRequest struct {
	SessionID string `json:"sessionId" binding:"required,uuid"`
	Content   string `json:"content" binding:"required,max=2000"`
}

type UpdateRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}
