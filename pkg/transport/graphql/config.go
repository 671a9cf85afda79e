package graphql

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/saturnines/nexus-gql/pkg/config"
	"github.com/saturnines/nexus-gql/pkg/errors"
)

// NewFromConfig creates a Transport from a loaded config. Extra options are
// applied after the config ones.
func NewFromConfig(cfg *config.Transport, logger *zap.Logger, opts ...Option) (*Transport, error) {
	if cfg == nil {
		return nil, errors.WrapError(fmt.Errorf("config cannot be nil"), errors.ErrConfiguration, "new transport")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Name != "" {
		logger = logger.With(zap.String("transport", cfg.Name))
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	base := []Option{
		WithHTTPClient(&http.Client{Timeout: timeout}),
		WithPersistedOperations(cfg.PersistedQueries),
		WithHeaders(cfg.Headers),
		WithLogger(logger),
	}
	return New(cfg.Endpoint, append(base, opts...)...)
}
