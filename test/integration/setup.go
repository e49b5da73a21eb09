package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"kartshop/internal/action"
	"kartshop/internal/auth"
	"kartshop/internal/backend"
	"kartshop/internal/backendtest"
	"kartshop/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// TestEnv bundles the fake backend with a fully wired client stack.
type TestEnv struct {
	Backend  *backendtest.Server
	Client   backend.Client
	Sessions auth.SessionStore
	Store    *store.Store
	Products *action.Products
	Orders   *action.Orders
	Auth     *action.Auth
}

// SetupEnv starts a fake backend and wires a complete client against it.
func SetupEnv(t *testing.T) *TestEnv {
	t.Helper()

	server := backendtest.NewServer()
	t.Cleanup(server.Close)

	logger := zerolog.Nop()
	client := backend.NewClient(server.URL(), 5*time.Second, logger)
	provider := auth.NewProvider(server.URL(), "test-key", 5*time.Second, logger)
	sessions := auth.NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"), logger)

	return &TestEnv{
		Backend:  server,
		Client:   client,
		Sessions: sessions,
		Store:    store.New(logger),
		Products: action.NewProducts(client, logger),
		Orders:   action.NewOrders(client, logger),
		Auth:     action.NewAuth(provider, sessions, auth.NewExpiryTimer(), logger),
	}
}

// SignIn registers an account on the fake backend and signs the store in.
func (e *TestEnv) SignIn(t *testing.T, email, password string) {
	t.Helper()

	e.Backend.SeedUser(email, password)
	require.NoError(t, e.Auth.SignIn(context.Background(), e.Store, email, password))
	require.NotEmpty(t, e.Store.CurrentUserID())
}
