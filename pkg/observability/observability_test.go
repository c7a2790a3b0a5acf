package observability

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCloudWatch struct {
	mock.Mock
}

func (m *mockCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	args := m.Called(ctx, params)
	return &cloudwatch.PutMetricDataOutput{}, args.Error(0)
}

func counterValue(t *testing.T, c *Collector, name string) float64 {
	t.Helper()
	families, err := c.Registry().Gather()
	require.NoError(t, err)

	total := 0.0
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}

func TestCollector_IndependentRegistries(t *testing.T) {
	a := NewCollector("moviereviews")
	b := NewCollector("moviereviews")

	a.ObserveHTTP("GET", "/movies", "200", 10*time.Millisecond)
	a.ObserveDispatch("query", "ListMovies", nil, time.Millisecond)
	a.ObserveDB("Scan", "Movies", errors.New("boom"), time.Millisecond)

	assert.Equal(t, 1.0, counterValue(t, a, "moviereviews_http_requests_total"))
	assert.Equal(t, 1.0, counterValue(t, a, "moviereviews_db_operations_total"))
	assert.Equal(t, 0.0, counterValue(t, b, "moviereviews_http_requests_total"))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("moviereviews")
	c.ObserveEvent("movie.added", nil)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `moviereviews_domain_events_total{status="ok",type="movie.added"} 1`)
}

func TestMetrics_RecordInvocation(t *testing.T) {
	client := new(mockCloudWatch)
	client.On("PutMetricData", mock.Anything, mock.MatchedBy(func(in *cloudwatch.PutMetricDataInput) bool {
		return aws.ToString(in.Namespace) == "MovieReviews/test" && len(in.MetricData) == 3
	})).Return(nil)

	m := NewMetrics("MovieReviews/test", client, zap.NewNop())
	m.RecordInvocation(context.Background(), "GET /movies", 500, 20*time.Millisecond)

	client.AssertExpectations(t)
}

func TestMetrics_NilClientIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordInvocation(context.Background(), "GET /movies", 200, time.Millisecond)

	NewMetrics("ns", nil, zap.NewNop()).RecordInvocation(context.Background(), "GET /movies", 200, time.Millisecond)
}

func TestTracer_DisabledRunsFunction(t *testing.T) {
	tracer := NewTracer("moviereviews", false)
	called := false

	err := tracer.TraceFunction(context.Background(), "op", func(ctx context.Context) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.False(t, tracer.Enabled())
}
