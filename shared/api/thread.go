package api

// Request DTOs of /api/threads/{board}. Bodies arrive as JSON or as form fields
// with the same names.

type CreateThreadRequest struct {
	Board          string `json:"board"` // overrides the path board when set
	Text           string `json:"text" validate:"required"`
	DeletePassword string `json:"delete_password" validate:"required"`
}

type ReportThreadRequest struct {
	ReportId string `json:"report_id"`
}

type DeleteThreadRequest struct {
	ThreadId       string `json:"thread_id"`
	DeletePassword string `json:"delete_password"`
}
