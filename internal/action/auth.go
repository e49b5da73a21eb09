package action

import (
	"context"
	"fmt"
	"time"

	"kartshop/internal/auth"
	"kartshop/internal/model"
	"kartshop/internal/store"

	"github.com/rs/zerolog"
)

// Auth creates authentication events and owns the session lifecycle: the
// persisted blob and the expiry timer that logs the user out when the
// token lifetime elapses.
type Auth struct {
	provider auth.Provider
	sessions auth.SessionStore
	timer    *auth.ExpiryTimer
	clock    func() time.Time
	logger   zerolog.Logger
}

// NewAuth creates the auth action creators.
func NewAuth(provider auth.Provider, sessions auth.SessionStore, timer *auth.ExpiryTimer, logger zerolog.Logger) *Auth {
	return &Auth{
		provider: provider,
		sessions: sessions,
		timer:    timer,
		clock:    time.Now,
		logger:   logger.With().Str("action", "auth").Logger(),
	}
}

// SignUp registers a new account and signs it in.
func (a *Auth) SignUp(ctx context.Context, d Dispatcher, email, password string) error {
	return a.start(ctx, d, email, password, a.provider.SignUp)
}

// SignIn authenticates an existing account.
func (a *Auth) SignIn(ctx context.Context, d Dispatcher, email, password string) error {
	return a.start(ctx, d, email, password, a.provider.SignIn)
}

func (a *Auth) start(ctx context.Context, d Dispatcher, email, password string, authenticate func(context.Context, string, string) (auth.Credentials, error)) error {
	if email == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Email is required")
	}
	if password == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Password is required")
	}

	creds, err := authenticate(ctx, email, password)
	if err != nil {
		return err
	}

	a.establish(d, creds.UserID, creds.Token, creds.ExpiresIn)

	if err := a.sessions.Save(auth.Session{
		Token:          creds.Token,
		UserID:         creds.UserID,
		ExpirationDate: a.clock().Add(creds.ExpiresIn),
	}); err != nil {
		// A failed save only costs the next startup its restored session.
		a.logger.Warn().Err(err).Msg("failed to persist session")
	}

	a.logger.Info().Str("user_id", creds.UserID).Msg("signed in")
	return nil
}

// Logout cancels the expiry timer, clears the persisted session and resets
// the signed-in identity.
func (a *Auth) Logout(d Dispatcher) {
	a.timer.Cancel()

	if err := a.sessions.Clear(); err != nil {
		a.logger.Warn().Err(err).Msg("failed to clear session")
	}

	d.Dispatch(store.LoggedOut{})
	a.logger.Info().Msg("signed out")
}

// Restore reads the persisted session at startup. A valid session signs the
// user back in with the remaining lifetime; a missing or expired one leaves
// the store signed out. It reports whether a session was restored.
func (a *Auth) Restore(d Dispatcher) (bool, error) {
	session, err := a.sessions.Load()
	if err != nil {
		return false, fmt.Errorf("failed to restore session: %w", err)
	}

	now := a.clock()
	if session == nil || session.Expired(now) {
		return false, nil
	}

	a.establish(d, session.UserID, session.Token, session.ExpirationDate.Sub(now))

	a.logger.Info().Str("user_id", session.UserID).Msg("session restored")
	return true, nil
}

func (a *Auth) establish(d Dispatcher, userID, token string, lifetime time.Duration) {
	a.timer.Schedule(lifetime, func() { a.Logout(d) })
	d.Dispatch(store.Authenticated{UserID: userID, Token: token})
}
