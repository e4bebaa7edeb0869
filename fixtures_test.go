package godastic

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/require"

	"github.com/godastic/godastic/estestx"
	"github.com/godastic/godastic/logrusx"
)

type User struct {
	BaseModel

	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	LastLogin time.Time `json:"last_login"`
}

func (User) IndexName() string {
	return "user"
}

func (u *User) SetDefaults() {
	if u.LastLogin.IsZero() {
		u.LastLogin = time.Now().UTC()
	}
}

type testFixture struct {
	ctx  context.Context
	srv  *estestx.Server
	conn *Connection
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()

	srv := estestx.NewServer()
	t.Cleanup(srv.Close)

	conn, err := NewConnection(elasticsearch.Config{
		Addresses: []string{srv.URL()},
	}, WithConnectionLogger(logrusx.New("godastic.test", logrusx.WithOutput(io.Discard))))
	require.NoError(t, err)

	return &testFixture{
		ctx:  context.Background(),
		srv:  srv,
		conn: conn,
	}
}
