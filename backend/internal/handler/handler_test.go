package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msgboard/msgboard/shared/api"
	"github.com/msgboard/msgboard/shared/config"
	"github.com/msgboard/msgboard/shared/domain"
)

type MockThreadService struct {
	MockList   func(ctx context.Context, board domain.BoardName) ([]domain.ThreadPreview, error)
	MockCreate func(ctx context.Context, data domain.ThreadCreationData) (*domain.Thread, error)
	MockReport func(ctx context.Context, board domain.BoardName, id domain.ThreadId) error
	MockDelete func(ctx context.Context, board domain.BoardName, id domain.ThreadId, password domain.Password) error
}

func (m *MockThreadService) List(ctx context.Context, board domain.BoardName) ([]domain.ThreadPreview, error) {
	if m.MockList != nil {
		return m.MockList(ctx, board)
	}
	return []domain.ThreadPreview{}, nil
}

func (m *MockThreadService) Create(ctx context.Context, data domain.ThreadCreationData) (*domain.Thread, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, data)
	}
	return &domain.Thread{}, nil
}

func (m *MockThreadService) Report(ctx context.Context, board domain.BoardName, id domain.ThreadId) error {
	if m.MockReport != nil {
		return m.MockReport(ctx, board, id)
	}
	return nil
}

func (m *MockThreadService) Delete(ctx context.Context, board domain.BoardName, id domain.ThreadId, password domain.Password) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, board, id, password)
	}
	return nil
}

type MockReplyService struct {
	MockCreate func(ctx context.Context, data domain.ReplyCreationData) (*domain.Board, error)
	MockGet    func(ctx context.Context, board domain.BoardName, threadId domain.ThreadId) (*domain.Thread, error)
	MockReport func(ctx context.Context, board domain.BoardName, threadId domain.ThreadId, replyId domain.ReplyId) error
	MockDelete func(ctx context.Context, board domain.BoardName, threadId domain.ThreadId, replyId domain.ReplyId, password domain.Password) error
}

func (m *MockReplyService) Create(ctx context.Context, data domain.ReplyCreationData) (*domain.Board, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, data)
	}
	return domain.NewBoard(data.Board), nil
}

func (m *MockReplyService) Get(ctx context.Context, board domain.BoardName, threadId domain.ThreadId) (*domain.Thread, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, board, threadId)
	}
	return &domain.Thread{}, nil
}

func (m *MockReplyService) Report(ctx context.Context, board domain.BoardName, threadId domain.ThreadId, replyId domain.ReplyId) error {
	if m.MockReport != nil {
		return m.MockReport(ctx, board, threadId, replyId)
	}
	return nil
}

func (m *MockReplyService) Delete(ctx context.Context, board domain.BoardName, threadId domain.ThreadId, replyId domain.ReplyId, password domain.Password) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, board, threadId, replyId, password)
	}
	return nil
}

// newTestRouter mounts the board endpoints the same way the real router does.
func newTestRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Route("/api/threads/{board}", func(r chi.Router) {
		r.Get("/", h.ListThreads)
		r.Post("/", h.CreateThread)
		r.Put("/", h.ReportThread)
		r.Delete("/", h.DeleteThread)
	})
	r.Route("/api/replies/{board}", func(r chi.Router) {
		r.Get("/", h.GetReplies)
		r.Post("/", h.CreateReply)
		r.Put("/", h.ReportReply)
		r.Delete("/", h.DeleteReply)
	})
	return r
}

func newTestHandler(thread *MockThreadService, reply *MockReplyService) *Handler {
	if thread == nil {
		thread = &MockThreadService{}
	}
	if reply == nil {
		reply = &MockReplyService{}
	}
	return New(thread, reply, &MockHealthChecker{}, config.Default())
}

func serve(h *Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rr, req)
	return rr
}

func serveJSON(h *Handler, method, target, body string) *httptest.ResponseRecorder {
	return serve(h, method, target, "application/json", body)
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}
