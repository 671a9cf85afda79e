// Package graphql sends single GraphQL operations over HTTP and classifies
// the outcome.
package graphql

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/saturnines/nexus-gql/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// Transport sends operations to one endpoint. It is safe for concurrent use;
// sends share nothing but read-only configuration.
type Transport struct {
	endpoint *url.URL
	mode     RequestMode
	headers  map[string]string
	doer     HTTPDoer
	logger   *zap.Logger
	builder  *Builder
}

// New creates a Transport for endpoint, which must be an absolute URL.
func New(endpoint string, opts ...Option) (*Transport, error) {
	u, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "invalid endpoint")
	}

	t := &Transport{
		endpoint: u,
		mode:     FullDocument,
		doer: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.doer == nil {
		return nil, errors.WrapError(fmt.Errorf("HTTP doer cannot be nil"), errors.ErrConfiguration, "invalid option")
	}
	if t.logger == nil {
		t.logger = zap.NewNop()
	}

	t.builder = NewBuilder(u, t.mode, t.headers)
	return t, nil
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint cannot be empty")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("endpoint %q is not an absolute URL", endpoint)
	}
	return u, nil
}

// Endpoint returns a copy of the target URL.
func (t *Transport) Endpoint() *url.URL {
	u := *t.endpoint
	return &u
}

// Mode returns the request mode fixed at construction.
func (t *Transport) Mode() RequestMode {
	return t.mode
}

// Send starts one HTTP exchange for op and returns its handle without
// waiting for it. onComplete is called at most once, from another
// goroutine, unless the task is cancelled first.
//
// Errors returned by Send itself wrap errors.ErrConfiguration and mean no
// request was made.
func (t *Transport) Send(ctx context.Context, op Operation, onComplete CompletionFunc) (*Task, error) {
	if op == nil {
		return nil, errors.WrapError(fmt.Errorf("operation cannot be nil"), errors.ErrConfiguration, "send")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, cancel := context.WithCancel(ctx)
	req, err := t.builder.Build(ctx, op)
	if err != nil {
		cancel()
		return nil, err
	}

	task := newTask(cancel)
	log := t.logger.With(
		zap.String("method", req.Method),
		zap.Stringer("mode", t.mode),
	)
	log.Debug("graphql send")

	go func() {
		defer close(task.done)
		defer cancel()

		start := time.Now()
		resp, err := t.doer.Do(req)
		result, err := interpret(op, resp, err)

		if !task.claim() {
			log.Debug("graphql result discarded after cancel", zap.Error(err))
			return
		}

		if err != nil {
			log.Warn("graphql send failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		} else {
			log.Debug("graphql send completed", zap.Duration("elapsed", time.Since(start)))
		}

		if onComplete != nil {
			onComplete(result, err)
		}
	}()

	return task, nil
}
