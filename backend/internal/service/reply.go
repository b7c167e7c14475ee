package service

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/msgboard/msgboard/shared/config"
	"github.com/msgboard/msgboard/shared/domain"
)

type ReplyService interface {
	Create(ctx context.Context, data domain.ReplyCreationData) (*domain.Board, error)
	Get(ctx context.Context, board domain.BoardName, threadId domain.ThreadId) (*domain.Thread, error)
	Report(ctx context.Context, board domain.BoardName, threadId domain.ThreadId, replyId domain.ReplyId) error
	Delete(ctx context.Context, board domain.BoardName, threadId domain.ThreadId, replyId domain.ReplyId, password domain.Password) error
}

type Reply struct {
	editor    *boardEditor
	validator InputValidator
	sanitizer TextSanitizer
	now       clock
}

func NewReply(storage BoardStorage, validator InputValidator, sanitizer TextSanitizer, cfg *config.Config, conflicts prometheus.Counter) *Reply {
	return &Reply{
		editor:    newBoardEditor(storage, cfg.Public.Storage.SaveAttempts, conflicts),
		validator: validator,
		sanitizer: sanitizer,
		now:       time.Now,
	}
}

// Create appends a reply and bumps its thread. The whole saved board is returned.
func (s *Reply) Create(ctx context.Context, data domain.ReplyCreationData) (*domain.Board, error) {
	if err := s.validator.Text(data.Text); err != nil {
		return nil, err
	}
	if err := s.validator.Password(data.DeletePassword); err != nil {
		return nil, err
	}

	text, err := s.sanitizer.Sanitize(data.Text)
	if err != nil {
		return nil, err
	}

	reply := domain.NewReply(text, data.DeletePassword, s.now())
	return s.editor.update(ctx, data.Board, false, func(b *domain.Board) error {
		thread, err := findThread(b, data.ThreadId)
		if err != nil {
			return err
		}
		thread.AddReply(reply)
		return nil
	})
}

// Get returns a thread with every reply in full.
func (s *Reply) Get(ctx context.Context, board domain.BoardName, threadId domain.ThreadId) (*domain.Thread, error) {
	b, err := s.editor.storage.GetBoard(ctx, board)
	if err != nil {
		return nil, err
	}
	return findThread(b, threadId)
}

func (s *Reply) Report(ctx context.Context, board domain.BoardName, threadId domain.ThreadId, replyId domain.ReplyId) error {
	now := s.now()
	_, err := s.editor.update(ctx, board, false, func(b *domain.Board) error {
		reply, err := findReply(b, threadId, replyId)
		if err != nil {
			return err
		}
		reply.Report(now)
		return nil
	})
	return err
}

func (s *Reply) Delete(ctx context.Context, board domain.BoardName, threadId domain.ThreadId, replyId domain.ReplyId, password domain.Password) error {
	_, err := s.editor.update(ctx, board, false, func(b *domain.Board) error {
		reply, err := findReply(b, threadId, replyId)
		if err != nil {
			return err
		}
		return reply.Delete(password)
	})
	return err
}
