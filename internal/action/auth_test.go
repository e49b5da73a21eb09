package action

import (
	"context"
	"testing"
	"time"

	"kartshop/internal/auth"
	"kartshop/internal/model"
	"kartshop/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthAction(provider auth.Provider, sessions auth.SessionStore, now time.Time) *Auth {
	a := NewAuth(provider, sessions, auth.NewExpiryTimer(), zerolog.Nop())
	a.clock = func() time.Time { return now }
	return a
}

func TestAuth_SignIn(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)

	t.Run("dispatches Authenticated and persists the session", func(t *testing.T) {
		provider := new(MockProvider)
		provider.On("SignIn", ctx, "a@b.c", "secret").Return(auth.Credentials{
			UserID:    "u1",
			Token:     "tok-1",
			ExpiresIn: time.Hour,
		}, nil)
		sessions := new(MockSessionStore)
		sessions.On("Save", auth.Session{
			Token:          "tok-1",
			UserID:         "u1",
			ExpirationDate: now.Add(time.Hour),
		}).Return(nil)

		d := &testDispatcher{}
		err := newAuthAction(provider, sessions, now).SignIn(ctx, d, "a@b.c", "secret")

		require.NoError(t, err)
		require.Len(t, d.events, 1)
		assert.Equal(t, store.Authenticated{UserID: "u1", Token: "tok-1"}, d.events[0])
		provider.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})

	t.Run("provider rejection propagates and dispatches nothing", func(t *testing.T) {
		provider := new(MockProvider)
		provider.On("SignIn", ctx, "a@b.c", "bad").Return(auth.Credentials{}, &model.AuthError{
			Reason:  model.AuthCodeInvalidPassword,
			Message: "The password is invalid.",
		})

		d := &testDispatcher{}
		err := newAuthAction(provider, new(MockSessionStore), now).SignIn(ctx, d, "a@b.c", "bad")

		var authErr *model.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, model.AuthCodeInvalidPassword, authErr.Reason)
		assert.Empty(t, d.events)
	})

	t.Run("rejects missing credentials", func(t *testing.T) {
		a := newAuthAction(new(MockProvider), new(MockSessionStore), now)
		d := &testDispatcher{}

		var domainErr *model.DomainError
		require.ErrorAs(t, a.SignIn(ctx, d, "", "secret"), &domainErr)
		require.ErrorAs(t, a.SignIn(ctx, d, "a@b.c", ""), &domainErr)
		assert.Empty(t, d.events)
	})

	t.Run("failed session save is not fatal", func(t *testing.T) {
		provider := new(MockProvider)
		provider.On("SignIn", ctx, "a@b.c", "secret").Return(auth.Credentials{
			UserID: "u1", Token: "tok-1", ExpiresIn: time.Hour,
		}, nil)
		sessions := new(MockSessionStore)
		sessions.On("Save", mock.Anything).Return(assert.AnError)

		d := &testDispatcher{}
		err := newAuthAction(provider, sessions, now).SignIn(ctx, d, "a@b.c", "secret")

		require.NoError(t, err)
		require.Len(t, d.events, 1)
	})
}

func TestAuth_SignUp(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)

	provider := new(MockProvider)
	provider.On("SignUp", ctx, "new@b.c", "secret").Return(auth.Credentials{
		UserID: "u2", Token: "tok-2", ExpiresIn: time.Hour,
	}, nil)
	sessions := new(MockSessionStore)
	sessions.On("Save", mock.Anything).Return(nil)

	d := &testDispatcher{}
	err := newAuthAction(provider, sessions, now).SignUp(ctx, d, "new@b.c", "secret")

	require.NoError(t, err)
	require.Len(t, d.events, 1)
	assert.Equal(t, store.Authenticated{UserID: "u2", Token: "tok-2"}, d.events[0])
}

func TestAuth_Logout(t *testing.T) {
	sessions := new(MockSessionStore)
	sessions.On("Clear").Return(nil)

	a := newAuthAction(new(MockProvider), sessions, time.Now())
	d := &testDispatcher{}

	a.Logout(d)

	require.Len(t, d.events, 1)
	assert.Equal(t, store.LoggedOut{}, d.events[0])
	sessions.AssertExpectations(t)
}

func TestAuth_ExpiryLogsOut(t *testing.T) {
	ctx := context.Background()

	provider := new(MockProvider)
	provider.On("SignIn", ctx, "a@b.c", "secret").Return(auth.Credentials{
		UserID: "u1", Token: "tok-1", ExpiresIn: 15 * time.Millisecond,
	}, nil)
	sessions := new(MockSessionStore)
	sessions.On("Save", mock.Anything).Return(nil)
	sessions.On("Clear").Return(nil)

	s := store.New(zerolog.Nop())
	a := NewAuth(provider, sessions, auth.NewExpiryTimer(), zerolog.Nop())

	require.NoError(t, a.SignIn(ctx, s, "a@b.c", "secret"))
	require.Equal(t, "u1", s.CurrentUserID())

	assert.Eventually(t, func() bool {
		return s.CurrentUserID() == ""
	}, time.Second, 5*time.Millisecond)
	sessions.AssertExpectations(t)
}

func TestAuth_Restore(t *testing.T) {
	now := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)

	t.Run("valid session signs the user back in", func(t *testing.T) {
		sessions := new(MockSessionStore)
		sessions.On("Load").Return(&auth.Session{
			Token:          "tok-1",
			UserID:         "u1",
			ExpirationDate: now.Add(30 * time.Minute),
		}, nil)

		d := &testDispatcher{}
		restored, err := newAuthAction(new(MockProvider), sessions, now).Restore(d)

		require.NoError(t, err)
		assert.True(t, restored)
		require.Len(t, d.events, 1)
		assert.Equal(t, store.Authenticated{UserID: "u1", Token: "tok-1"}, d.events[0])
	})

	t.Run("missing session leaves the store signed out", func(t *testing.T) {
		sessions := new(MockSessionStore)
		sessions.On("Load").Return(nil, nil)

		d := &testDispatcher{}
		restored, err := newAuthAction(new(MockProvider), sessions, now).Restore(d)

		require.NoError(t, err)
		assert.False(t, restored)
		assert.Empty(t, d.events)
	})

	t.Run("expired session leaves the store signed out", func(t *testing.T) {
		sessions := new(MockSessionStore)
		sessions.On("Load").Return(&auth.Session{
			Token:          "tok-1",
			UserID:         "u1",
			ExpirationDate: now.Add(-time.Minute),
		}, nil)

		d := &testDispatcher{}
		restored, err := newAuthAction(new(MockProvider), sessions, now).Restore(d)

		require.NoError(t, err)
		assert.False(t, restored)
		assert.Empty(t, d.events)
	})

	t.Run("load failure propagates", func(t *testing.T) {
		sessions := new(MockSessionStore)
		sessions.On("Load").Return(nil, assert.AnError)

		d := &testDispatcher{}
		_, err := newAuthAction(new(MockProvider), sessions, now).Restore(d)

		assert.Error(t, err)
	})
}
