package api

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message" example:"ok"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool        `json:"success" example:"false"`
	Message string      `json:"message" example:"Session not found"`
	Error   interface{} `json:"error,omitempty"`
}

type HealthResponse struct {
	Status     string `json:"status" example:"ok"`
	Database   string `json:"database" example:"ok"`
	EmailQueue int64  `json:"emailQueue" example:"0"`
}
