package api

// Request DTOs of /api/replies/{board}

type CreateReplyRequest struct {
	ThreadId       string `json:"thread_id"`
	Text           string `json:"text" validate:"required"`
	DeletePassword string `json:"delete_password" validate:"required"`
}

type ReportReplyRequest struct {
	ThreadId string `json:"thread_id"`
	ReplyId  string `json:"reply_id"`
}

type DeleteReplyRequest struct {
	ThreadId       string `json:"thread_id"`
	ReplyId        string `json:"reply_id"`
	DeletePassword string `json:"delete_password"`
}
