package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matthieukhl/expotrack/internal/chat"
	"github.com/matthieukhl/expotrack/internal/database"
	"github.com/matthieukhl/expotrack/internal/normalize"
	"github.com/matthieukhl/expotrack/internal/payload"
	"github.com/matthieukhl/expotrack/internal/sheets"
)

// Strategy names, in fallback order
const (
	NameSheets   = "sheets"
	NameChat     = "chat"
	NameSnapshot = "snapshot"
	NameMock     = "mock"
)

// data_source labels stamped on records
const (
	LabelSheets = "Google Sheets"
	LabelChat   = "Chat Query"
	LabelMock   = "Mock Data"
)

// IsLive reports whether a strategy talks to a real upstream
func IsLive(name string) bool {
	return name == NameSheets || name == NameChat
}

// Normalizer turns parsed rows into records
type Normalizer[T any] func(rows []normalize.Row) []T

// SheetsStrategy reads one sheet of the spreadsheet
type SheetsStrategy[T any] struct {
	client    *sheets.Client
	sheet     string
	timeout   time.Duration
	normalize Normalizer[T]
}

func NewSheetsStrategy[T any](client *sheets.Client, sheet string, timeout time.Duration, n Normalizer[T]) *SheetsStrategy[T] {
	return &SheetsStrategy[T]{client: client, sheet: sheet, timeout: timeout, normalize: n}
}

func (s *SheetsStrategy[T]) Name() string           { return NameSheets }
func (s *SheetsStrategy[T]) Timeout() time.Duration { return s.timeout }

func (s *SheetsStrategy[T]) Fetch(ctx context.Context) ([]T, error) {
	values, err := s.client.Values(ctx, s.sheet)
	if err != nil {
		return nil, err
	}
	return decode(payload.FromValues(values), s.normalize)
}

// ChatQuery asks the chat service for a payload
type ChatQuery func(ctx context.Context, booth string) (payload.Payload, error)

// ChatStrategy queries the data through the chat service
type ChatStrategy[T any] struct {
	query     ChatQuery
	timeout   time.Duration
	normalize Normalizer[T]
}

func NewChatStrategy[T any](query ChatQuery, timeout time.Duration, n Normalizer[T]) *ChatStrategy[T] {
	return &ChatStrategy[T]{query: query, timeout: timeout, normalize: n}
}

// NewChatOrders and NewChatChecklist bind an engine to the matching query
func NewChatOrders[T any](engine *chat.Engine, timeout time.Duration, n Normalizer[T]) *ChatStrategy[T] {
	return NewChatStrategy(engine.QueryOrders, timeout, n)
}

func NewChatChecklist[T any](engine *chat.Engine, timeout time.Duration, n Normalizer[T]) *ChatStrategy[T] {
	return NewChatStrategy(engine.QueryChecklist, timeout, n)
}

func (s *ChatStrategy[T]) Name() string           { return NameChat }
func (s *ChatStrategy[T]) Timeout() time.Duration { return s.timeout }

func (s *ChatStrategy[T]) Fetch(ctx context.Context) ([]T, error) {
	p, err := s.query(ctx, "")
	if err != nil {
		return nil, err
	}
	return decode(p, s.normalize)
}

func decode[T any](p payload.Payload, n Normalizer[T]) ([]T, error) {
	rows, err := p.Records()
	if err != nil {
		if errors.Is(err, payload.ErrEmpty) {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("failed to parse %s payload: %w", p.Kind(), err)
	}

	records := n(rows)
	if len(records) == 0 {
		return nil, ErrNoData
	}
	return records, nil
}

// SnapshotStrategy serves the last dataset saved from a live upstream
type SnapshotStrategy[T any] struct {
	db   *database.DB
	kind string
}

func NewSnapshotStrategy[T any](db *database.DB, kind string) *SnapshotStrategy[T] {
	return &SnapshotStrategy[T]{db: db, kind: kind}
}

func (s *SnapshotStrategy[T]) Name() string           { return NameSnapshot }
func (s *SnapshotStrategy[T]) Timeout() time.Duration { return 5 * time.Second }

func (s *SnapshotStrategy[T]) Fetch(ctx context.Context) ([]T, error) {
	records, _, err := database.LoadRecords[T](ctx, s.db, s.kind)
	if err != nil {
		if errors.Is(err, database.ErrNoSnapshot) {
			return nil, ErrNoData
		}
		return nil, err
	}
	return records, nil
}

// Save is a Recorder that keeps the snapshot current
func (s *SnapshotStrategy[T]) Save(ctx context.Context, strategy string, records []T) {
	if err := database.SaveRecords(ctx, s.db, s.kind, strategy, records); err != nil {
		logWarnSnapshot(s.kind, err)
	}
}

// MockStrategy serves a fixed dataset
type MockStrategy[T any] struct {
	load func() ([]T, error)
}

func NewMockStrategy[T any](load func() ([]T, error)) *MockStrategy[T] {
	return &MockStrategy[T]{load: load}
}

func (s *MockStrategy[T]) Name() string           { return NameMock }
func (s *MockStrategy[T]) Timeout() time.Duration { return time.Second }

func (s *MockStrategy[T]) Fetch(ctx context.Context) ([]T, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]T, len(records))
	copy(out, records)
	return out, nil
}
