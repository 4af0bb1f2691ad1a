package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matthieukhl/expotrack/internal/metrics"
)

type fakeStrategy struct {
	name       string
	records    []string
	err        error
	panics     bool
	calls      int
	noDeadline bool
}

func (f *fakeStrategy) Name() string           { return f.name }
func (f *fakeStrategy) Timeout() time.Duration { return time.Second }

func (f *fakeStrategy) Fetch(ctx context.Context) ([]string, error) {
	f.calls++
	if _, ok := ctx.Deadline(); !ok {
		f.noDeadline = true
	}
	if f.panics {
		panic("upstream exploded")
	}
	return f.records, f.err
}

func TestChainFirstSuccessWins(t *testing.T) {
	first := &fakeStrategy{name: NameSheets, records: []string{"a"}}
	second := &fakeStrategy{name: NameMock, records: []string{"b"}}

	res, err := NewChain[string]("orders", nil, first, second).Fetch()
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.Strategy != NameSheets || len(res.Records) != 1 || res.Records[0] != "a" {
		t.Errorf("unexpected result %+v", res)
	}
	if second.calls != 0 {
		t.Error("later strategy should not run after a success")
	}
	if first.noDeadline {
		t.Error("strategy context had no deadline")
	}
}

func TestChainFallsThrough(t *testing.T) {
	failing := &fakeStrategy{name: NameSheets, err: errors.New("403")}
	empty := &fakeStrategy{name: NameChat}
	panicky := &fakeStrategy{name: NameSnapshot, panics: true}
	mock := &fakeStrategy{name: NameMock, records: []string{"m1", "m2"}}

	res, err := NewChain[string]("checklist", nil, failing, empty, panicky, mock).Fetch()
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.Strategy != NameMock || len(res.Records) != 2 {
		t.Errorf("expected mock result, got %+v", res)
	}
	if len(res.Failures) != 3 {
		t.Errorf("expected 3 failures, got %v", res.Failures)
	}
	if !errors.Is(res.Failures[NameChat], ErrNoData) {
		t.Errorf("empty strategy error = %v, want ErrNoData", res.Failures[NameChat])
	}
	for _, s := range []*fakeStrategy{failing, empty, panicky, mock} {
		if s.calls != 1 {
			t.Errorf("%s called %d times, want exactly once", s.name, s.calls)
		}
	}
}

func TestChainAllFail(t *testing.T) {
	res, err := NewChain[string]("orders", nil,
		&fakeStrategy{name: NameSheets, err: errors.New("down")},
		&fakeStrategy{name: NameChat},
	).Fetch()
	if err == nil {
		t.Fatal("expected error when every strategy fails")
	}
	if !errors.Is(err, ErrNoData) {
		t.Errorf("joined error should wrap ErrNoData: %v", err)
	}
	if len(res.Records) != 0 {
		t.Errorf("expected no records, got %v", res.Records)
	}
}

func TestChainRecordsOnlyLiveResults(t *testing.T) {
	var recorded []string
	recorder := func(ctx context.Context, strategy string, records []string) {
		recorded = append(recorded, strategy)
	}

	NewChain[string]("orders", nil, &fakeStrategy{name: NameChat, records: []string{"x"}}).
		OnLiveResult(recorder).Fetch()
	NewChain[string]("orders", nil, &fakeStrategy{name: NameMock, records: []string{"x"}}).
		OnLiveResult(recorder).Fetch()

	if len(recorded) != 1 || recorded[0] != NameChat {
		t.Errorf("recorded = %v, want [chat]", recorded)
	}
}

func TestChainMetrics(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	NewChain[string]("orders", m,
		&fakeStrategy{name: NameSheets, err: errors.New("down")},
		&fakeStrategy{name: NameMock, records: []string{"a"}},
	).Fetch()

	if got := testutil.ToFloat64(m.SourceFetches.WithLabelValues("orders", NameSheets, "error")); got != 1 {
		t.Errorf("sheets error count = %v", got)
	}
	if got := testutil.ToFloat64(m.SourceFetches.WithLabelValues("orders", NameMock, "success")); got != 1 {
		t.Errorf("mock success count = %v", got)
	}
}

func TestChainTry(t *testing.T) {
	chain := NewChain[string]("orders", nil,
		&fakeStrategy{name: NameSheets, records: []string{"a"}},
		&fakeStrategy{name: NameMock, records: []string{"b"}},
	)

	if names := chain.Strategies(); len(names) != 2 || names[1] != NameMock {
		t.Errorf("Strategies() = %v", names)
	}
	got, err := chain.Try(NameMock)
	if err != nil || len(got) != 1 || got[0] != "b" {
		t.Errorf("Try(mock) = %v, %v", got, err)
	}
	if _, err := chain.Try(NameChat); err == nil {
		t.Error("expected error for unregistered strategy")
	}
}
