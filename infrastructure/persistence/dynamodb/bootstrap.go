package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"moviereviews/infrastructure/persistence/schema"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// EnsureTables creates every catalog table that does not exist yet. It is
// meant for local DynamoDB endpoints; deployed tables are provisioned
// outside the service.
func EnsureTables(ctx context.Context, admin TableAdmin, catalog schema.Catalog, logger *zap.Logger) error {
	for _, table := range catalog.All() {
		_, err := admin.CreateTable(ctx, table.CreateTableInput())
		if err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				logger.Debug("Table already exists", zap.String("table", table.Name))
				continue
			}
			return fmt.Errorf("failed to create table %s: %w", table.Name, err)
		}
		logger.Info("Created table", zap.String("table", table.Name))
	}
	return nil
}
