package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/msgboard/msgboard/shared/domain"
	internal_errors "github.com/msgboard/msgboard/shared/errors"
	"github.com/msgboard/msgboard/shared/logger"
)

// BoardStorage persists whole board documents.
//
// GetBoard returns *errors.NotFound for an unknown name. CreateBoard and
// SaveBoard return errors.Conflict when the name is taken or when the stored
// version differs from board.Version; on success SaveBoard increments
// board.Version.
type BoardStorage interface {
	GetBoard(ctx context.Context, name domain.BoardName) (*domain.Board, error)
	CreateBoard(ctx context.Context, board *domain.Board) error
	SaveBoard(ctx context.Context, board *domain.Board) error
}

type InputValidator interface {
	BoardName(name string) error
	Text(text string) error
	Password(password string) error
}

// TextSanitizer returns the text to store or a Validation error.
type TextSanitizer interface {
	Sanitize(text string) (string, error)
}

// boardEditor runs read-modify-write cycles over one board document.
type boardEditor struct {
	storage   BoardStorage
	attempts  int
	conflicts prometheus.Counter
}

func newBoardEditor(storage BoardStorage, attempts int, conflicts prometheus.Counter) *boardEditor {
	return &boardEditor{storage: storage, attempts: max(1, attempts), conflicts: conflicts}
}

// update loads board name, applies mutate and saves the result. An error from
// mutate aborts without saving. A version conflict reruns the cycle on a fresh
// copy. With createMissing an unknown board starts out empty and is inserted.
func (e *boardEditor) update(ctx context.Context, name domain.BoardName, createMissing bool, mutate func(*domain.Board) error) (*domain.Board, error) {
	var err error
	for attempt := 1; attempt <= e.attempts; attempt++ {
		board, created, getErr := e.load(ctx, name, createMissing)
		if getErr != nil {
			return nil, getErr
		}
		if err = mutate(board); err != nil {
			return nil, err
		}

		if created {
			err = e.storage.CreateBoard(ctx, board)
		} else {
			err = e.storage.SaveBoard(ctx, board)
		}
		if err == nil {
			return board, nil
		}
		if !errors.Is(err, internal_errors.Conflict) {
			return nil, err
		}

		if e.conflicts != nil {
			e.conflicts.Inc()
		}
		logger.Log.Warn("board save conflict", "board", name, "attempt", attempt)
	}
	return nil, fmt.Errorf("save board %q after %d attempts: %w", name, e.attempts, err)
}

func (e *boardEditor) load(ctx context.Context, name domain.BoardName, createMissing bool) (*domain.Board, bool, error) {
	board, err := e.storage.GetBoard(ctx, name)
	if err == nil {
		return board, false, nil
	}
	if createMissing && internal_errors.IsNotFound(err, internal_errors.BoardEntity) {
		return domain.NewBoard(name), true, nil
	}
	return nil, false, err
}

func findThread(board *domain.Board, id domain.ThreadId) (*domain.Thread, error) {
	thread, ok := board.Thread(id)
	if !ok {
		return nil, &internal_errors.NotFound{Entity: internal_errors.ThreadEntity, Id: id}
	}
	return thread, nil
}

func findReply(board *domain.Board, threadId domain.ThreadId, replyId domain.ReplyId) (*domain.Reply, error) {
	thread, err := findThread(board, threadId)
	if err != nil {
		return nil, err
	}
	reply, ok := thread.Reply(replyId)
	if !ok {
		return nil, &internal_errors.NotFound{Entity: internal_errors.ReplyEntity, Id: replyId}
	}
	return reply, nil
}

type clock func() time.Time
