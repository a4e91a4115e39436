package ports

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-oracle/internal/domain"
)

// mockUnit is a test implementation of the Unit interface.
type mockUnit struct {
	name        string
	executeFunc func(context.Context, domain.State) (domain.State, error)
	validateErr error
}

func (m *mockUnit) Name() string { return m.name }

func (m *mockUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	if m.executeFunc != nil {
		return m.executeFunc(ctx, state)
	}
	return state, nil
}

func (m *mockUnit) Validate() error { return m.validateErr }

func TestUnit_Interface(t *testing.T) {
	var _ Unit = (*mockUnit)(nil)

	unit := &mockUnit{
		name: "test-unit",
		executeFunc: func(ctx context.Context, state domain.State) (domain.State, error) {
			return domain.With(state, domain.KeyOutput, "YES"), nil
		},
	}

	assert.Equal(t, "test-unit", unit.Name())
	assert.NoError(t, unit.Validate())

	initial := domain.NewState()
	newState, err := unit.Execute(context.Background(), initial)
	require.NoError(t, err)

	got, ok := domain.Get(newState, domain.KeyOutput)
	assert.True(t, ok)
	assert.Equal(t, "YES", got)

	_, ok = domain.Get(initial, domain.KeyOutput)
	assert.False(t, ok, "Execute must not modify the input state")
}

func TestUnit_ErrorHandling(t *testing.T) {
	sentinel := errors.New("execution failed")
	unit := &mockUnit{
		name: "failing-unit",
		executeFunc: func(ctx context.Context, state domain.State) (domain.State, error) {
			return state, sentinel
		},
		validateErr: domain.ErrInvalidConfiguration,
	}

	assert.ErrorIs(t, unit.Validate(), domain.ErrInvalidConfiguration)

	_, err := unit.Execute(context.Background(), domain.NewState())
	assert.ErrorIs(t, err, sentinel)
}

func TestUnitFactory(t *testing.T) {
	var factory UnitFactory = func(id string, config map[string]any) (Unit, error) {
		return &mockUnit{name: id}, nil
	}

	unit, err := factory("oracle", nil)
	require.NoError(t, err)
	assert.Equal(t, "oracle", unit.Name())
}
