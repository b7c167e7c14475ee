// Package memory keeps board documents in process memory. Documents are
// deep-copied on the way in and out, so callers never share state with the store.
package memory

import (
	"context"
	"sync"

	"github.com/msgboard/msgboard/shared/domain"
	"github.com/msgboard/msgboard/shared/errors"
)

type Storage struct {
	mu     sync.RWMutex
	boards map[domain.BoardName]*domain.Board
}

func New() *Storage {
	return &Storage{boards: make(map[domain.BoardName]*domain.Board)}
}

func (s *Storage) GetBoard(ctx context.Context, name domain.BoardName) (*domain.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	board, ok := s.boards[name]
	if !ok {
		return nil, &errors.NotFound{Entity: errors.BoardEntity, Id: name}
	}
	return board.Clone(), nil
}

func (s *Storage) CreateBoard(ctx context.Context, board *domain.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.boards[board.Name]; ok {
		return errors.Conflict
	}
	s.boards[board.Name] = board.Clone()
	return nil
}

func (s *Storage) SaveBoard(ctx context.Context, board *domain.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.boards[board.Name]
	if !ok {
		return &errors.NotFound{Entity: errors.BoardEntity, Id: board.Name}
	}
	if stored.Version != board.Version {
		return errors.Conflict
	}
	board.Version++
	s.boards[board.Name] = board.Clone()
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Storage) Cleanup() error {
	return nil
}
