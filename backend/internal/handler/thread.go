package handler

import (
	"net/http"

	"github.com/msgboard/msgboard/shared/api"
	"github.com/msgboard/msgboard/shared/domain"
	"github.com/msgboard/msgboard/shared/utils"
)

var (
	listThreadsFailure  = failure{noBoard: msgNoBoardWithName, internal: "There was an error fetching threads"}
	createThreadFailure = failure{internal: "There was an error saving in post"}
	reportThreadFailure = failure{noBoard: msgBoardNotFound, internal: "There was an error reporting the thread"}
	deleteThreadFailure = failure{noBoard: msgBoardNotFound, internal: "There was an error deleting the thread"}
)

func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	previews, err := h.thread.List(r.Context(), boardParam(r))
	if err != nil {
		writeFailure(w, r, err, listThreadsFailure)
		return
	}
	utils.WriteJSON(w, previews)
}

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var body api.CreateThreadRequest
	if err := utils.DecodeValidate(r, &body); err != nil {
		writeFailure(w, r, err, createThreadFailure)
		return
	}

	board := boardParam(r)
	if body.Board != "" {
		board = body.Board
	}
	thread, err := h.thread.Create(r.Context(), domain.ThreadCreationData{
		Board:          board,
		Text:           body.Text,
		DeletePassword: body.DeletePassword,
	})
	if err != nil {
		writeFailure(w, r, err, createThreadFailure)
		return
	}
	utils.WriteJSON(w, thread)
}

func (h *Handler) ReportThread(w http.ResponseWriter, r *http.Request) {
	var body api.ReportThreadRequest
	if err := utils.Decode(r, &body); err != nil {
		writeFailure(w, r, err, reportThreadFailure)
		return
	}

	if err := h.thread.Report(r.Context(), boardParam(r), body.ReportId); err != nil {
		writeFailure(w, r, err, reportThreadFailure)
		return
	}
	utils.WriteText(w, "reported")
}

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	var body api.DeleteThreadRequest
	if err := utils.Decode(r, &body); err != nil {
		writeFailure(w, r, err, deleteThreadFailure)
		return
	}

	if err := h.thread.Delete(r.Context(), boardParam(r), body.ThreadId, body.DeletePassword); err != nil {
		writeFailure(w, r, err, deleteThreadFailure)
		return
	}
	utils.WriteText(w, "success")
}
