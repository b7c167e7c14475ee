package service

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/msgboard/msgboard/backend/internal/storage/memory"
	"github.com/msgboard/msgboard/backend/internal/utils"
	"github.com/msgboard/msgboard/shared/config"
	"github.com/msgboard/msgboard/shared/domain"
)

// MockBoardStorage mocks the BoardStorage interface.
type MockBoardStorage struct {
	getBoardFunc    func(ctx context.Context, name domain.BoardName) (*domain.Board, error)
	createBoardFunc func(ctx context.Context, board *domain.Board) error
	saveBoardFunc   func(ctx context.Context, board *domain.Board) error
}

func (m *MockBoardStorage) GetBoard(ctx context.Context, name domain.BoardName) (*domain.Board, error) {
	if m.getBoardFunc != nil {
		return m.getBoardFunc(ctx, name)
	}
	return domain.NewBoard(name), nil
}

func (m *MockBoardStorage) CreateBoard(ctx context.Context, board *domain.Board) error {
	if m.createBoardFunc != nil {
		return m.createBoardFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardStorage) SaveBoard(ctx context.Context, board *domain.Board) error {
	if m.saveBoardFunc != nil {
		return m.saveBoardFunc(ctx, board)
	}
	return nil
}

// MockSanitizer records what it was asked to check.
type MockSanitizer struct {
	mu   sync.Mutex
	seen []string
	err  error
}

func (m *MockSanitizer) Sanitize(text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = append(m.seen, text)
	if m.err != nil {
		return "", m.err
	}
	return text, nil
}

var testNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Public.Storage.Driver = config.DriverMemory
	return cfg
}

// fixedClock returns start on the first call and advances a minute per call.
func fixedClock(start time.Time) clock {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Minute)
		return now
	}
}

type services struct {
	storage   *memory.Storage
	thread    *Thread
	reply     *Reply
	conflicts prometheus.Counter
}

func newServices() *services {
	cfg := testConfig()
	storage := memory.New()
	validator := utils.NewInputValidator(cfg.Public.Limits)
	conflicts := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_conflicts_total"})

	thread := NewThread(storage, validator, &MockSanitizer{}, cfg, conflicts)
	reply := NewReply(storage, validator, &MockSanitizer{}, cfg, conflicts)
	clk := fixedClock(testNow)
	thread.now = clk
	reply.now = clk

	return &services{storage: storage, thread: thread, reply: reply, conflicts: conflicts}
}
