package bus

import (
	"context"
	"errors"
	"testing"

	"moviereviews/pkg/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type renameCommand struct {
	name string
}

func (c *renameCommand) Validate() error {
	if c.name == "" {
		return errors.New("name is required")
	}
	return nil
}

func TestCommandBus_Send(t *testing.T) {
	b := NewCommandBus(
		LoggingMiddleware(zap.NewNop()),
		MetricsMiddleware(observability.NewCollector("test")),
		TracingMiddleware(observability.NewTracer("test", false)),
	)

	var handled string
	require.NoError(t, b.Register(&renameCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		handled = cmd.(*renameCommand).name
		return nil
	})))

	require.NoError(t, b.Send(context.Background(), &renameCommand{name: "Inception"}))
	assert.Equal(t, "Inception", handled)
}

func TestCommandBus_ValidationStopsDispatch(t *testing.T) {
	b := NewCommandBus()
	called := false
	require.NoError(t, b.Register(&renameCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		called = true
		return nil
	})))

	err := b.Send(context.Background(), &renameCommand{})

	assert.ErrorContains(t, err, "name is required")
	assert.False(t, called)
}

func TestCommandBus_WrapsHandlerErrors(t *testing.T) {
	b := NewCommandBus()
	sentinel := errors.New("conflict")
	require.NoError(t, b.Register(&renameCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		return sentinel
	})))

	err := b.Send(context.Background(), &renameCommand{name: "x"})
	assert.ErrorIs(t, err, sentinel)

	assert.ErrorIs(t, NewCommandBus().Send(context.Background(), &renameCommand{name: "x"}), ErrHandlerNotFound)
}
