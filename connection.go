package godastic

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/godastic/godastic/configx"
	"github.com/godastic/godastic/errorx"
	"github.com/godastic/godastic/logrusx"
)

// Connection is a handle to an elasticsearch server or cluster. All calls
// through it are blocking and context-aware; concurrency is supplied by the
// caller running them in goroutines, and identical inputs produce identical
// requests regardless of how the calls are scheduled.
type Connection struct {
	es     *elasticsearch.Client
	logger *logrusx.Logger
}

type connectionOptions struct {
	logger *logrusx.Logger
	ping   bool
}

type ConnectionOption func(*connectionOptions)

func WithConnectionLogger(l *logrusx.Logger) ConnectionOption {
	return func(o *connectionOptions) {
		o.logger = l
	}
}

// WithPing verifies the server is reachable before the connection is
// handed out, retrying with exponential backoff.
func WithPing() ConnectionOption {
	return func(o *connectionOptions) {
		o.ping = true
	}
}

// NewConnection creates a Connection based on the given config.
func NewConnection(config elasticsearch.Config, opts ...ConnectionOption) (*Connection, error) {
	o := &connectionOptions{
		logger: logrusx.New("godastic"),
	}
	for _, opt := range opts {
		opt(o)
	}

	es, err := elasticsearch.NewClient(config)
	if err != nil {
		return nil, err
	}

	c := &Connection{
		es:     es,
		logger: o.logger,
	}

	if o.ping {
		if err := c.Ping(context.Background()); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Client exposes the underlying elasticsearch client for operations outside
// this library's scope, such as search requests.
func (c *Connection) Client() *elasticsearch.Client {
	return c.es
}

// Ping checks connectivity, retrying with exponential backoff for up to a
// minute.
func (c *Connection) Ping(ctx context.Context) error {
	bc := backoff.NewExponentialBackOff()
	bc.MaxElapsedTime = time.Minute
	bc.Reset()

	return backoff.Retry(func() error {
		res, err := esapi.PingRequest{}.Do(ctx, c.es)
		if err != nil {
			return err
		}

		defer res.Body.Close()

		if res.IsError() {
			return withElasticError(res)
		}

		c.logger.Debug("elasticsearch is reachable")
		return nil
	}, backoff.WithContext(bc, ctx))
}

// The process-wide connection slot. Explicitly a nil-or-ready pointer:
// every access goes through DefaultConnection, which fails with
// NotInitialized rather than dereferencing an absent handle.
var defaultConnection atomic.Pointer[Connection]

// Connect creates the process-wide default connection used by operations
// that are not given an explicit one. Calling it again replaces the active
// handle; it must not race with in-flight operations unless the caller
// accepts seeing either handle.
func Connect(config elasticsearch.Config, opts ...ConnectionOption) (*Connection, error) {
	c, err := NewConnection(config, opts...)
	if err != nil {
		return nil, err
	}

	defaultConnection.Store(c)
	c.logger.WithField("addresses", config.Addresses).Info("connected to elasticsearch")

	return c, nil
}

// ConnectFromProvider is Connect with the config read from a configx
// Provider.
func ConnectFromProvider(p *configx.Provider, opts ...ConnectionOption) (*Connection, error) {
	s := p.ConnectionSettings()

	return Connect(elasticsearch.Config{
		Addresses: s.Addresses,
		Username:  s.Username,
		Password:  s.Password,
		CloudID:   s.CloudID,
		APIKey:    s.APIKey,
	}, opts...)
}

// DefaultConnection returns the connection set by Connect, or a
// NotInitialized error when Connect has not been called.
func DefaultConnection() (*Connection, error) {
	c := defaultConnection.Load()
	if c == nil {
		return nil, errorx.NotInitializedErrorf("client not initialized - make sure to call godastic.Connect()")
	}

	return c, nil
}

// Disconnect clears the process-wide default connection.
func Disconnect() {
	defaultConnection.Store(nil)
}
