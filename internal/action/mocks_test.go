package action

import (
	"context"

	"kartshop/internal/auth"
	"kartshop/internal/backend"
	"kartshop/internal/model"
	"kartshop/internal/store"

	"github.com/stretchr/testify/mock"
)

// testDispatcher records dispatched events and serves fixed identity
// lookups.
type testDispatcher struct {
	userID string
	token  string
	events []store.Event
}

func (d *testDispatcher) Dispatch(ev store.Event) { d.events = append(d.events, ev) }
func (d *testDispatcher) CurrentUserID() string   { return d.userID }
func (d *testDispatcher) CurrentToken() string    { return d.token }

// MockBackendClient is a mock implementation of backend.Client.
type MockBackendClient struct {
	mock.Mock
}

func (m *MockBackendClient) FetchProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockBackendClient) CreateProduct(ctx context.Context, token, ownerID string, fields backend.ProductFields) (model.Product, error) {
	args := m.Called(ctx, token, ownerID, fields)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockBackendClient) UpdateProduct(ctx context.Context, token, id string, fields backend.ProductFields) error {
	args := m.Called(ctx, token, id, fields)
	return args.Error(0)
}

func (m *MockBackendClient) DeleteProduct(ctx context.Context, token, id string) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *MockBackendClient) FetchOrders(ctx context.Context, userID string) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockBackendClient) CreateOrder(ctx context.Context, token, userID string, lines []model.OrderLine, total float64, placedAt string) (model.Order, error) {
	args := m.Called(ctx, token, userID, lines, total, placedAt)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *MockBackendClient) DeleteOrder(ctx context.Context, token, userID, orderID string) error {
	args := m.Called(ctx, token, userID, orderID)
	return args.Error(0)
}

// MockProvider is a mock implementation of auth.Provider.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) SignUp(ctx context.Context, email, password string) (auth.Credentials, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(auth.Credentials), args.Error(1)
}

func (m *MockProvider) SignIn(ctx context.Context, email, password string) (auth.Credentials, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(auth.Credentials), args.Error(1)
}

// MockSessionStore is a mock implementation of auth.SessionStore.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Load() (*auth.Session, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockSessionStore) Save(session auth.Session) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockSessionStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}
