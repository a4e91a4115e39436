package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-oracle/internal/domain"
	"github.com/ahrav/go-oracle/internal/ports"
)

// mockExecutable is a test implementation of Executable.
type mockExecutable struct {
	id          string
	executeFunc func(ctx context.Context, state domain.State) (domain.State, error)
	executed    bool
	mu          sync.Mutex
}

func (m *mockExecutable) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	m.mu.Lock()
	m.executed = true
	m.mu.Unlock()

	if m.executeFunc != nil {
		return m.executeFunc(ctx, state)
	}
	return state, nil
}

func (m *mockExecutable) ID() string { return m.id }

func (m *mockExecutable) wasExecuted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.executed
}

var stepKey = domain.NewKey[[]int]("test.steps")

func appendStep(step int) func(context.Context, domain.State) (domain.State, error) {
	return func(_ context.Context, state domain.State) (domain.State, error) {
		steps, _ := domain.Get(state, stepKey)
		next := append(append([]int(nil), steps...), step)
		return domain.With(state, stepKey, next), nil
	}
}

func TestPipeline_Execute(t *testing.T) {
	tests := []struct {
		name          string
		setupPipeline func(cancel context.CancelFunc) (*Pipeline, []*mockExecutable)
		wantErr       bool
		errMsg        string
		verify        func(t *testing.T, state domain.State, mocks []*mockExecutable)
	}{
		{
			name: "executes units in sequence",
			setupPipeline: func(context.CancelFunc) (*Pipeline, []*mockExecutable) {
				pipeline := NewPipeline("test-pipeline")
				mocks := make([]*mockExecutable, 3)
				for i := range mocks {
					mocks[i] = &mockExecutable{id: fmt.Sprintf("unit%d", i), executeFunc: appendStep(i)}
					require.NoError(t, pipeline.Add(mocks[i]))
				}
				return pipeline, mocks
			},
			verify: func(t *testing.T, state domain.State, mocks []*mockExecutable) {
				for _, m := range mocks {
					assert.True(t, m.wasExecuted())
				}
				steps, ok := domain.Get(state, stepKey)
				require.True(t, ok)
				assert.Equal(t, []int{0, 1, 2}, steps)
			},
		},
		{
			name: "stops on first error",
			setupPipeline: func(context.CancelFunc) (*Pipeline, []*mockExecutable) {
				pipeline := NewPipeline("error-pipeline")
				mocks := []*mockExecutable{
					{id: "unit0", executeFunc: appendStep(0)},
					{id: "unit1", executeFunc: func(_ context.Context, state domain.State) (domain.State, error) {
						return state, errors.New("unit1 failed")
					}},
					{id: "unit2", executeFunc: appendStep(2)},
				}
				for _, m := range mocks {
					require.NoError(t, pipeline.Add(m))
				}
				return pipeline, mocks
			},
			wantErr: true,
			errMsg:  "pipeline error-pipeline: execution failed at unit1: unit1 failed",
			verify: func(t *testing.T, state domain.State, mocks []*mockExecutable) {
				assert.True(t, mocks[0].wasExecuted())
				assert.True(t, mocks[1].wasExecuted())
				assert.False(t, mocks[2].wasExecuted())

				steps, _ := domain.Get(state, stepKey)
				assert.Equal(t, []int{0}, steps, "state from before the failure is returned")
			},
		},
		{
			name: "stops when the context is cancelled between units",
			setupPipeline: func(cancel context.CancelFunc) (*Pipeline, []*mockExecutable) {
				pipeline := NewPipeline("cancel-pipeline")
				mocks := []*mockExecutable{
					{id: "unit0", executeFunc: func(_ context.Context, state domain.State) (domain.State, error) {
						cancel()
						return state, nil
					}},
					{id: "unit1"},
				}
				for _, m := range mocks {
					require.NoError(t, pipeline.Add(m))
				}
				return pipeline, mocks
			},
			wantErr: true,
			errMsg:  "context canceled",
			verify: func(t *testing.T, _ domain.State, mocks []*mockExecutable) {
				assert.True(t, mocks[0].wasExecuted())
				assert.False(t, mocks[1].wasExecuted())
			},
		},
		{
			name: "empty pipeline returns the input state",
			setupPipeline: func(context.CancelFunc) (*Pipeline, []*mockExecutable) {
				return NewPipeline("empty"), nil
			},
			verify: func(t *testing.T, state domain.State, _ []*mockExecutable) {
				assert.Equal(t, 0, state.Len())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			pipeline, mocks := tt.setupPipeline(cancel)
			resultState, err := pipeline.Execute(ctx, domain.NewState())

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}

			if tt.verify != nil {
				tt.verify(t, resultState, mocks)
			}
		})
	}
}

func TestPipeline_Add(t *testing.T) {
	tests := []struct {
		name    string
		setup   func() *Pipeline
		exec    ports.Executable
		wantErr bool
		errMsg  string
	}{
		{
			name:  "adds executable successfully",
			setup: func() *Pipeline { return NewPipeline("test") },
			exec:  &mockExecutable{id: "unit1"},
		},
		{
			name:    "rejects nil executable",
			setup:   func() *Pipeline { return NewPipeline("test") },
			exec:    nil,
			wantErr: true,
			errMsg:  "nil executable",
		},
		{
			name: "rejects duplicate ID",
			setup: func() *Pipeline {
				p := NewPipeline("test")
				require.NoError(t, p.Add(&mockExecutable{id: "unit1"}))
				return p
			},
			exec:    &mockExecutable{id: "unit1"},
			wantErr: true,
			errMsg:  "already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := tt.setup()
			err := pipeline.Add(tt.exec)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPipeline_ExecutablesReturnsCopy(t *testing.T) {
	p := NewPipeline("copy")
	require.NoError(t, p.Add(&mockExecutable{id: "a"}))
	require.NoError(t, p.Add(&mockExecutable{id: "b"}))

	execs := p.Executables()
	require.Len(t, execs, 2)
	assert.Equal(t, "a", execs[0].ID())
	assert.Equal(t, "b", execs[1].ID())

	execs[0] = &mockExecutable{id: "mutated"}
	assert.Equal(t, "a", p.Executables()[0].ID())
	assert.Equal(t, "copy", p.ID())
}

func TestUnitAdapter(t *testing.T) {
	unit := &testMockUnit{name: "inner"}
	adapter := NewUnitAdapter(unit, "outer")

	assert.Equal(t, "outer", adapter.ID())
	assert.Same(t, unit, adapter.Unit())

	state, err := adapter.Execute(context.Background(), domain.NewState())
	require.NoError(t, err)
	assert.Equal(t, 0, state.Len())
}

type latencyRecord struct {
	operation string
	unit      string
}

type recordingMetrics struct {
	ports.NopMetrics
	mu        sync.Mutex
	latencies []latencyRecord
}

func (r *recordingMetrics) RecordLatency(operation string, _ time.Duration, labels map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latencies = append(r.latencies, latencyRecord{operation: operation, unit: labels["unit"]})
}

func TestUnitAdapter_RecordsLatencyPerUnit(t *testing.T) {
	metrics := &recordingMetrics{}
	p := NewPipeline("program")
	require.NoError(t, p.Add(NewUnitAdapter(&testMockUnit{name: "a"}, "first").WithMetrics(metrics, "is_prime")))
	require.NoError(t, p.Add(NewUnitAdapter(&testMockUnit{name: "b"}, "second").WithMetrics(metrics, "is_prime")))
	require.NoError(t, p.Add(NewUnitAdapter(&testMockUnit{name: "c"}, "untracked")))

	_, err := p.Execute(context.Background(), domain.NewState())
	require.NoError(t, err)

	assert.Equal(t, []latencyRecord{
		{operation: "is_prime", unit: "first"},
		{operation: "is_prime", unit: "second"},
	}, metrics.latencies)
}
