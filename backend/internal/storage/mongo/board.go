package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/msgboard/msgboard/shared/domain"
	internal_errors "github.com/msgboard/msgboard/shared/errors"
)

func (s *Storage) GetBoard(ctx context.Context, name domain.BoardName) (*domain.Board, error) {
	var board domain.Board
	err := s.boards.FindOne(ctx, bson.M{"name": name}).Decode(&board)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &internal_errors.NotFound{Entity: internal_errors.BoardEntity, Id: name}
	}
	if err != nil {
		return nil, fmt.Errorf("find board %q: %w", name, err)
	}
	normalize(&board)
	return &board, nil
}

func (s *Storage) CreateBoard(ctx context.Context, board *domain.Board) error {
	_, err := s.boards.InsertOne(ctx, board)
	if mongo.IsDuplicateKeyError(err) {
		return internal_errors.Conflict
	}
	if err != nil {
		return fmt.Errorf("insert board %q: %w", board.Name, err)
	}
	return nil
}

// SaveBoard replaces the document only while its version still matches board.Version.
func (s *Storage) SaveBoard(ctx context.Context, board *domain.Board) error {
	next := *board
	next.Version = board.Version + 1

	res, err := s.boards.ReplaceOne(ctx, bson.M{"name": board.Name, "version": board.Version}, &next)
	if err != nil {
		return fmt.Errorf("replace board %q: %w", board.Name, err)
	}
	if res.MatchedCount == 0 {
		return internal_errors.Conflict
	}
	board.Version = next.Version
	return nil
}

func (s *Storage) DeleteBoard(ctx context.Context, name domain.BoardName) error {
	res, err := s.boards.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return &internal_errors.NotFound{Entity: internal_errors.BoardEntity, Id: name}
	}
	return nil
}

// normalize turns BSON nulls back into empty lists.
func normalize(board *domain.Board) {
	if board.Threads == nil {
		board.Threads = []*domain.Thread{}
	}
	for _, t := range board.Threads {
		if t.Replies == nil {
			t.Replies = []*domain.Reply{}
		}
	}
}
