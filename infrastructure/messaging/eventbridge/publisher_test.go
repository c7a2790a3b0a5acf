package eventbridge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"moviereviews/domain/events"
	"moviereviews/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockEventBridge struct {
	mock.Mock
}

func (m *mockEventBridge) PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*eventbridge.PutEventsOutput)
	return out, args.Error(1)
}

func TestPublisher_PublishBatchChunks(t *testing.T) {
	client := new(mockEventBridge)
	var sizes []int
	client.On("PutEvents", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sizes = append(sizes, len(args.Get(1).(*eventbridge.PutEventsInput).Entries))
	}).Return(&eventbridge.PutEventsOutput{}, nil)

	p := NewPublisher(client, "movies-bus", zap.NewNop())
	batch := make([]events.DomainEvent, 0, 12)
	for i := 0; i < 12; i++ {
		batch = append(batch, events.NewMovieAdded(i, "title", time.Now()))
	}

	require.NoError(t, p.PublishBatch(context.Background(), batch))
	assert.Equal(t, []int{10, 2}, sizes)
}

func TestPublisher_EntryShape(t *testing.T) {
	client := new(mockEventBridge)
	var entry types.PutEventsRequestEntry
	client.On("PutEvents", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		entry = args.Get(1).(*eventbridge.PutEventsInput).Entries[0]
	}).Return(&eventbridge.PutEventsOutput{}, nil)

	p := NewPublisher(client, "movies-bus", zap.NewNop())
	event := events.NewReviewAdded(1234, 1, 4.8, time.Date(2023, 11, 23, 15, 45, 0, 0, time.UTC))
	require.NoError(t, p.Publish(context.Background(), event))

	assert.Equal(t, "movies-bus", aws.ToString(entry.EventBusName))
	assert.Equal(t, Source, aws.ToString(entry.Source))
	assert.Equal(t, "review.added", aws.ToString(entry.DetailType))

	var detail map[string]any
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(entry.Detail)), &detail))
	assert.Equal(t, "1234", detail["aggregate_id"])
	assert.Equal(t, 4.8, detail["rating"])
	assert.NotEmpty(t, detail["event_id"])
}

func TestPublisher_Failures(t *testing.T) {
	t.Run("client error", func(t *testing.T) {
		client := new(mockEventBridge)
		client.On("PutEvents", mock.Anything, mock.Anything).Return(nil, errors.New("denied"))

		err := NewPublisher(client, "bus", zap.NewNop()).Publish(context.Background(), events.NewMovieDeleted(1, time.Now()))
		assert.ErrorContains(t, err, "denied")
	})

	t.Run("failed entries", func(t *testing.T) {
		client := new(mockEventBridge)
		client.On("PutEvents", mock.Anything, mock.Anything).Return(&eventbridge.PutEventsOutput{
			FailedEntryCount: 1,
			Entries:          []types.PutEventsResultEntry{{ErrorCode: aws.String("InternalFailure")}},
		}, nil)

		err := NewPublisher(client, "bus", zap.NewNop()).Publish(context.Background(), events.NewMovieDeleted(1, time.Now()))
		assert.ErrorContains(t, err, "1 events failed")
	})
}

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher(zap.NewNop())
	assert.NoError(t, p.Publish(context.Background(), events.NewMovieDeleted(1, time.Now())))
}

func TestInstrumentedPublisher_CountsEvents(t *testing.T) {
	collector := observability.NewCollector("test")
	client := new(mockEventBridge)
	client.On("PutEvents", mock.Anything, mock.Anything).Return(nil, errors.New("throttled")).Once()

	p := NewInstrumentedPublisher(NewPublisher(client, "bus", zap.NewNop()), collector)
	err := p.Publish(context.Background(), events.NewMovieAdded(1, "Inception", time.Now()))
	require.Error(t, err)

	require.NoError(t, p.PublishBatch(context.Background(), nil))

	families, err := collector.Registry().Gather()
	require.NoError(t, err)

	var failed float64
	for _, family := range families {
		if family.GetName() != "test_domain_events_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, pair := range metric.GetLabel() {
				labels[pair.GetName()] = pair.GetValue()
			}
			if labels["status"] == "error" {
				failed += metric.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 1.0, failed)
}
