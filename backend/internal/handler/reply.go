package handler

import (
	"net/http"

	"github.com/msgboard/msgboard/shared/api"
	"github.com/msgboard/msgboard/shared/domain"
	"github.com/msgboard/msgboard/shared/utils"
)

var (
	createReplyFailure = failure{noBoard: msgBoardNotFound, internal: "There was an error adding the reply"}
	getRepliesFailure  = failure{noBoard: msgNoBoardWithName, internal: "There was an error fetching the reply"}
	reportReplyFailure = failure{noBoard: msgNoBoardWithName, internal: "There was an error reporting the reply"}
	deleteReplyFailure = failure{noBoard: msgNoBoardWithName, internal: "There was an error deleting the reply"}
)

func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	var body api.CreateReplyRequest
	if err := utils.DecodeValidate(r, &body); err != nil {
		writeFailure(w, r, err, createReplyFailure)
		return
	}

	board, err := h.reply.Create(r.Context(), domain.ReplyCreationData{
		Board:          boardParam(r),
		ThreadId:       body.ThreadId,
		Text:           body.Text,
		DeletePassword: body.DeletePassword,
	})
	if err != nil {
		writeFailure(w, r, err, createReplyFailure)
		return
	}
	utils.WriteJSON(w, board)
}

// GetReplies returns the whole thread named by the thread_id query parameter.
func (h *Handler) GetReplies(w http.ResponseWriter, r *http.Request) {
	threadId := r.URL.Query().Get("thread_id")

	thread, err := h.reply.Get(r.Context(), boardParam(r), threadId)
	if err != nil {
		writeFailure(w, r, err, getRepliesFailure)
		return
	}
	utils.WriteJSON(w, thread)
}

func (h *Handler) ReportReply(w http.ResponseWriter, r *http.Request) {
	var body api.ReportReplyRequest
	if err := utils.Decode(r, &body); err != nil {
		writeFailure(w, r, err, reportReplyFailure)
		return
	}

	if err := h.reply.Report(r.Context(), boardParam(r), body.ThreadId, body.ReplyId); err != nil {
		writeFailure(w, r, err, reportReplyFailure)
		return
	}
	utils.WriteText(w, "reported")
}

func (h *Handler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	var body api.DeleteReplyRequest
	if err := utils.Decode(r, &body); err != nil {
		writeFailure(w, r, err, deleteReplyFailure)
		return
	}

	err := h.reply.Delete(r.Context(), boardParam(r), body.ThreadId, body.ReplyId, body.DeletePassword)
	if err != nil {
		writeFailure(w, r, err, deleteReplyFailure)
		return
	}
	utils.WriteText(w, "success")
}
