package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	internal_errors "github.com/msgboard/msgboard/shared/errors"
	"github.com/msgboard/msgboard/shared/logger"
	"github.com/msgboard/msgboard/shared/utils"
)

const (
	msgNoBoardWithName = "No board with this name"
	msgBoardNotFound   = "Board not found"
	msgThreadNotFound  = "Thread not found"
	msgReplyNotFound   = "Reply not found"
)

// failure holds the messages one endpoint answers with when things go wrong.
type failure struct {
	noBoard  string // board lookup miss
	internal string // persistence or unexpected error
}

// writeFailure turns a service error into the endpoint's 200 response.
func writeFailure(w http.ResponseWriter, r *http.Request, err error, f failure) {
	var notFound *internal_errors.NotFound
	var validation *internal_errors.Validation
	switch {
	case errors.Is(err, internal_errors.WrongPassword):
		utils.WriteText(w, internal_errors.WrongPassword.Error())
	case errors.As(err, &validation):
		utils.WriteError(w, validation.Message)
	case errors.As(err, &notFound):
		switch notFound.Entity {
		case internal_errors.BoardEntity:
			utils.WriteError(w, f.noBoard)
		case internal_errors.ThreadEntity:
			utils.WriteError(w, msgThreadNotFound)
		default:
			utils.WriteError(w, msgReplyNotFound)
		}
	default:
		logger.Log.Error(f.internal,
			"error", err,
			"board", boardParam(r),
			"method", r.Method,
			"request_id", middleware.GetReqID(r.Context()),
		)
		utils.WriteError(w, f.internal)
	}
}

func boardParam(r *http.Request) string {
	return chi.URLParam(r, "board")
}
