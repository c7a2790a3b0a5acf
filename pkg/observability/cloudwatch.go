package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// CloudWatchAPI is the subset of the CloudWatch client used here.
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Metrics publishes per-invocation metrics to CloudWatch. A nil client
// turns every call into a no-op.
type Metrics struct {
	namespace string
	client    CloudWatchAPI
	logger    *zap.Logger
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string, client CloudWatchAPI, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// RecordInvocation records latency and outcome of one API Gateway invocation
func (m *Metrics) RecordInvocation(ctx context.Context, route string, status int, latency time.Duration) {
	if m == nil || m.client == nil {
		return
	}

	dimensions := []types.Dimension{
		{Name: aws.String("Route"), Value: aws.String(route)},
	}
	now := time.Now()

	metricData := []types.MetricDatum{
		{
			MetricName: aws.String("Latency"),
			Dimensions: dimensions,
			Value:      aws.Float64(float64(latency.Milliseconds())),
			Unit:       types.StandardUnitMilliseconds,
			Timestamp:  aws.Time(now),
		},
		{
			MetricName: aws.String("Requests"),
			Dimensions: append(dimensions, types.Dimension{
				Name:  aws.String("StatusCode"),
				Value: aws.String(strconv.Itoa(status)),
			}),
			Value:     aws.Float64(1),
			Unit:      types.StandardUnitCount,
			Timestamp: aws.Time(now),
		},
	}

	if status >= 500 {
		metricData = append(metricData, types.MetricDatum{
			MetricName: aws.String("ServerErrors"),
			Dimensions: dimensions,
			Value:      aws.Float64(1),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(now),
		})
	}

	if _, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: metricData,
	}); err != nil {
		m.logger.Warn("Failed to send metrics", zap.Error(err))
	}
}
