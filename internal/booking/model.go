package booking

type BookRequest struct {
	SessionID string `json:"sessionId" binding:"required,uuid"`
}
