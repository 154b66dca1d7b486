package logging

import "go.uber.org/zap"

// NewLogger builds the process-wide logger. Production gets the JSON
// encoder; anything else gets the human-readable development encoder.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
