package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/msgboard/msgboard/shared/domain"
	internal_errors "github.com/msgboard/msgboard/shared/errors"
)

func (s *Storage) GetBoard(ctx context.Context, name domain.BoardName) (*domain.Board, error) {
	var (
		threads []byte
		version int64
	)
	err := s.db.QueryRowContext(ctx, "SELECT threads, version FROM boards WHERE name = $1", name).Scan(&threads, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &internal_errors.NotFound{Entity: internal_errors.BoardEntity, Id: name}
	}
	if err != nil {
		return nil, fmt.Errorf("select board %q: %w", name, err)
	}

	board := domain.NewBoard(name)
	board.Version = version
	if err := json.Unmarshal(threads, &board.Threads); err != nil {
		return nil, fmt.Errorf("decode threads of board %q: %w", name, err)
	}
	if board.Threads == nil {
		board.Threads = []*domain.Thread{}
	}
	return board, nil
}

func (s *Storage) CreateBoard(ctx context.Context, board *domain.Board) error {
	threads, err := encodeThreads(board)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO boards(name, threads, version) VALUES($1, $2, $3) ON CONFLICT (name) DO NOTHING",
		board.Name, threads, board.Version)
	if err != nil {
		return fmt.Errorf("insert board %q: %w", board.Name, err)
	}
	return expectOneRow(res)
}

// SaveBoard overwrites the row only if nobody saved it since board was read.
func (s *Storage) SaveBoard(ctx context.Context, board *domain.Board) error {
	threads, err := encodeThreads(board)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
	UPDATE boards
	SET threads = $2, version = version + 1, updated_at = now()
	WHERE name = $1 AND version = $3`,
		board.Name, threads, board.Version)
	if err != nil {
		return fmt.Errorf("update board %q: %w", board.Name, err)
	}
	if err := expectOneRow(res); err != nil {
		return err
	}
	board.Version++
	return nil
}

func (s *Storage) DeleteBoard(ctx context.Context, name domain.BoardName) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM boards WHERE name = $1", name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &internal_errors.NotFound{Entity: internal_errors.BoardEntity, Id: name}
	}
	return nil
}

func encodeThreads(board *domain.Board) ([]byte, error) {
	threads := board.Threads
	if threads == nil {
		threads = []*domain.Thread{}
	}
	data, err := json.Marshal(threads)
	if err != nil {
		return nil, fmt.Errorf("encode threads of board %q: %w", board.Name, err)
	}
	return data, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return internal_errors.Conflict
	}
	return nil
}
