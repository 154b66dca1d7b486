package catalog

import (
	"context"

	"go.uber.org/zap"
)

// ReaderFactory creates catalog readers from connection descriptors.
// Call sites receive it explicitly rather than reaching into shared
// process-wide connection state.
type ReaderFactory interface {
	// NewReader opens a reader for the descriptor's engine type. Engines
	// without a registered implementation get the placeholder reader,
	// never an error.
	NewReader(ctx context.Context, desc Descriptor) (Reader, error)
}

type registryFactory struct {
	logger *zap.Logger
}

// NewReaderFactory returns a factory that uses the global registry.
// If logger is nil, a no-op logger is used.
func NewReaderFactory(logger *zap.Logger) ReaderFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &registryFactory{logger: logger}
}

func (f *registryFactory) NewReader(ctx context.Context, desc Descriptor) (Reader, error) {
	if reg, ok := lookup(desc.Engine); ok {
		return reg.Open(ctx, desc, f.logger)
	}

	f.logger.Debug("No catalog engine registered, using placeholder",
		zap.String("engine", desc.Engine))
	return newPlaceholderReader(f.logger), nil
}

// Ensure registryFactory implements ReaderFactory at compile time.
var _ ReaderFactory = (*registryFactory)(nil)
