package kernel

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/stockpile/pkg/docstore"
	grpcsrv "github.com/shashiranjanraj/stockpile/pkg/grpc"
)

// StoreChecks builds the health probes for both stores. They serve /healthz
// and the gRPC health service.
func StoreChecks(sql *gorm.DB, docs *docstore.Store) map[string]grpcsrv.Check {
	return map[string]grpcsrv.Check{
		"sql": func(ctx context.Context) error {
			sqlDB, err := sql.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"documents": docs.Ping,
	}
}
