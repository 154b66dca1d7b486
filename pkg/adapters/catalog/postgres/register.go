package postgres

import (
	"context"

	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/adapters/catalog"
)

func init() {
	catalog.Register(catalog.Registration{
		Info: catalog.EngineInfo{
			Type:        "postgresql",
			DisplayName: "PostgreSQL",
			Description: "Catalog introspection for PostgreSQL 12+",
		},
		Aliases: []string{"postgres"},
		Open: func(ctx context.Context, desc catalog.Descriptor, logger *zap.Logger) (catalog.Reader, error) {
			return Open(ctx, desc, logger)
		},
	})
}
