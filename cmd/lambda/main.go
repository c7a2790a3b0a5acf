package main

import (
	"context"
	"log"
	"sync"
	"time"

	"moviereviews/infrastructure/config"
	"moviereviews/infrastructure/di"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"go.uber.org/zap"
)

var (
	// container and chiLambda are built on the first invocation and reused
	// for the lifetime of the execution environment
	container *di.Container
	chiLambda *chiadapter.ChiLambda
	initOnce  sync.Once
	initErr   error

	coldStart = true
)

func initialize(ctx context.Context) error {
	initOnce.Do(func() {
		start := time.Now()

		cfg, err := config.LoadConfig()
		if err != nil {
			initErr = err
			return
		}

		container, err = di.InitializeContainer(ctx, cfg)
		if err != nil {
			initErr = err
			return
		}

		chiLambda = chiadapter.New(container.Handler)
		container.Logger.Info("Lambda initialized", zap.Duration("duration", time.Since(start)))
	})
	return initErr
}

// Handler is the Lambda function handler
func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if err := initialize(ctx); err != nil {
		log.Printf("Failed to initialize: %v", err)
		return events.APIGatewayProxyResponse{
			StatusCode: 500,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error":"service initialization failed","type":"INTERNAL"}`,
		}, nil
	}

	start := time.Now()
	resp, err := chiLambda.ProxyWithContext(ctx, req)
	if err != nil {
		container.Logger.Error("Proxy failed", zap.Error(err), zap.String("path", req.Path))
		return resp, err
	}

	if resp.Headers == nil {
		resp.Headers = make(map[string]string)
	}
	resp.Headers["X-Cold-Start"] = boolString(coldStart)
	coldStart = false
	if req.RequestContext.RequestID != "" {
		resp.Headers["X-Request-ID"] = req.RequestContext.RequestID
	}

	container.Metrics.RecordInvocation(ctx, req.Resource, resp.StatusCode, time.Since(start))

	container.Logger.Debug("Lambda response",
		zap.String("method", req.HTTPMethod),
		zap.String("path", req.Path),
		zap.String("request_id", req.RequestContext.RequestID),
		zap.Int("status_code", resp.StatusCode),
	)
	return resp, nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func main() {
	lambda.Start(Handler)
}
