package mysql

import (
	"context"

	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/adapters/catalog"
)

func init() {
	catalog.Register(catalog.Registration{
		Info: catalog.EngineInfo{
			Type:        "mysql",
			DisplayName: "MySQL",
			Description: "Catalog introspection for MySQL 8+",
		},
		Open: func(ctx context.Context, desc catalog.Descriptor, logger *zap.Logger) (catalog.Reader, error) {
			return Open(ctx, desc, logger)
		},
	})
}
