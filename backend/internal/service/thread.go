package service

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/msgboard/msgboard/shared/config"
	"github.com/msgboard/msgboard/shared/domain"
)

type ThreadService interface {
	List(ctx context.Context, board domain.BoardName) ([]domain.ThreadPreview, error)
	Create(ctx context.Context, data domain.ThreadCreationData) (*domain.Thread, error)
	Report(ctx context.Context, board domain.BoardName, id domain.ThreadId) error
	Delete(ctx context.Context, board domain.BoardName, id domain.ThreadId, password domain.Password) error
}

type Thread struct {
	editor    *boardEditor
	validator InputValidator
	sanitizer TextSanitizer
	listing   config.Listing
	now       clock
}

func NewThread(storage BoardStorage, validator InputValidator, sanitizer TextSanitizer, cfg *config.Config, conflicts prometheus.Counter) *Thread {
	return &Thread{
		editor:    newBoardEditor(storage, cfg.Public.Storage.SaveAttempts, conflicts),
		validator: validator,
		sanitizer: sanitizer,
		listing:   cfg.Public.Listing,
		now:       time.Now,
	}
}

// List returns the most recently bumped threads of a board with a few replies each.
func (s *Thread) List(ctx context.Context, board domain.BoardName) ([]domain.ThreadPreview, error) {
	b, err := s.editor.storage.GetBoard(ctx, board)
	if err != nil {
		return nil, err
	}
	return b.Preview(s.listing.Threads, s.listing.Replies), nil
}

// Create posts a new thread, creating the board on first use.
func (s *Thread) Create(ctx context.Context, data domain.ThreadCreationData) (*domain.Thread, error) {
	if err := s.validator.BoardName(data.Board); err != nil {
		return nil, err
	}
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

	thread := domain.NewThread(text, data.DeletePassword, s.now())
	_, err = s.editor.update(ctx, data.Board, true, func(b *domain.Board) error {
		b.AddThread(thread)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return thread, nil
}

func (s *Thread) Report(ctx context.Context, board domain.BoardName, id domain.ThreadId) error {
	now := s.now()
	_, err := s.editor.update(ctx, board, false, func(b *domain.Board) error {
		thread, err := findThread(b, id)
		if err != nil {
			return err
		}
		thread.Report(now)
		return nil
	})
	return err
}

// Delete soft-deletes a thread. errors.WrongPassword leaves the board untouched.
func (s *Thread) Delete(ctx context.Context, board domain.BoardName, id domain.ThreadId, password domain.Password) error {
	_, err := s.editor.update(ctx, board, false, func(b *domain.Board) error {
		thread, err := findThread(b, id)
		if err != nil {
			return err
		}
		return thread.Delete(password)
	})
	return err
}
