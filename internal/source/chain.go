package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matthieukhl/expotrack/internal/logger"
	"github.com/matthieukhl/expotrack/internal/metrics"
)

// ErrNoData is returned by a strategy that ran fine but produced nothing usable
var ErrNoData = errors.New("no data returned")

// DefaultTimeout bounds a strategy that does not declare its own timeout
const DefaultTimeout = 30 * time.Second

// Strategy is one way of obtaining a full set of records
type Strategy[T any] interface {
	Name() string
	Timeout() time.Duration
	Fetch(ctx context.Context) ([]T, error)
}

// Recorder receives every result produced by a live upstream
type Recorder[T any] func(ctx context.Context, strategy string, records []T)

// Result is what a chain run produced
type Result[T any] struct {
	Records  []T
	Strategy string
	Failures map[string]error
}

// Chain tries its strategies in order until one yields records
type Chain[T any] struct {
	kind       string
	strategies []Strategy[T]
	metrics    *metrics.Metrics
	recorder   Recorder[T]
}

func NewChain[T any](kind string, m *metrics.Metrics, strategies ...Strategy[T]) *Chain[T] {
	return &Chain[T]{
		kind:       kind,
		strategies: strategies,
		metrics:    m,
	}
}

// OnLiveResult registers a recorder for results from live upstreams
func (c *Chain[T]) OnLiveResult(r Recorder[T]) *Chain[T] {
	c.recorder = r
	return c
}

// Kind names the record kind the chain produces
func (c *Chain[T]) Kind() string {
	return c.kind
}

// Strategies lists the strategy names in the order they are tried
func (c *Chain[T]) Strategies() []string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name()
	}
	return names
}

// Fetch runs the chain. Each strategy is tried once, on its own timeout
// derived from a background context, so a caller going away does not
// cancel an upstream call already in flight.
func (c *Chain[T]) Fetch() (*Result[T], error) {
	failures := make(map[string]error)

	for _, s := range c.strategies {
		records, err := c.attempt(s)
		if err != nil {
			failures[s.Name()] = err
			logger.Warn("Source strategy failed", logger.Fields{
				"kind":     c.kind,
				"strategy": s.Name(),
				"error":    err.Error(),
			})
			continue
		}

		logger.Info("Source strategy succeeded", logger.Fields{
			"kind":     c.kind,
			"strategy": s.Name(),
			"records":  len(records),
		})

		if c.recorder != nil && IsLive(s.Name()) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			c.recorder(ctx, s.Name(), records)
			cancel()
		}

		return &Result[T]{Records: records, Strategy: s.Name(), Failures: failures}, nil
	}

	errs := make([]error, 0, len(failures))
	for _, s := range c.strategies {
		if err, ok := failures[s.Name()]; ok {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return &Result[T]{Failures: failures}, fmt.Errorf("all %s strategies failed: %w", c.kind, errors.Join(errs...))
}

// Try runs a single strategy by name, outside of the fallback order
func (c *Chain[T]) Try(name string) ([]T, error) {
	for _, s := range c.strategies {
		if s.Name() == name {
			return c.attempt(s)
		}
	}
	return nil, fmt.Errorf("strategy %q not registered for %s", name, c.kind)
}

func (c *Chain[T]) attempt(s Strategy[T]) (records []T, err error) {
	timeout := s.Timeout()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	result := "success"
	defer func() {
		if r := recover(); r != nil {
			records, err = nil, fmt.Errorf("strategy panicked: %v", r)
			result = "panic"
		}
		c.metrics.SourceFetch(c.kind, s.Name(), result, time.Since(start).Seconds())
	}()

	records, err = s.Fetch(ctx)
	switch {
	case err != nil:
		result = "error"
		if errors.Is(err, ErrNoData) {
			result = "empty"
		}
	case len(records) == 0:
		result = "empty"
		err = ErrNoData
	}
	if err != nil {
		records = nil
	}
	return records, err
}
