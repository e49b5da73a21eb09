package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"kartshop/internal/model"

	"github.com/rs/zerolog"
)

// Credentials is the identity provider's answer to a successful sign-up or
// sign-in.
type Credentials struct {
	UserID    string
	Token     string
	ExpiresIn time.Duration
}

// Provider defines email/password authentication against the identity
// provider.
type Provider interface {
	// SignUp registers a new account.
	SignUp(ctx context.Context, email, password string) (Credentials, error)

	// SignIn authenticates an existing account.
	SignIn(ctx context.Context, email, password string) (Credentials, error)
}

// signUpMessages maps sign-up rejection codes to user-facing text.
var signUpMessages = map[string]string{
	model.AuthCodeEmailExists:     "The email address is already in use by another account.",
	model.AuthCodeSignInDisabled:  "Password sign-in is disabled.",
	model.AuthCodeTooManyAttempts: "We have blocked all requests from this device due to unusual activity. Try again later.",
}

// signInMessages maps sign-in rejection codes to user-facing text.
var signInMessages = map[string]string{
	model.AuthCodeEmailNotFound:   "There is no user record corresponding to this email.",
	model.AuthCodeInvalidPassword: "The password is invalid.",
	model.AuthCodeUserDisabled:    "The user account has been disabled.",
	model.AuthCodeTooManyAttempts: "Too many unsuccessful login attempts. Please try again later.",
}

const genericAuthMessage = "Something went wrong"

// httpProvider implements Provider against the identity provider's REST
// surface.
type httpProvider struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  zerolog.Logger
}

// NewProvider creates an identity-provider client.
func NewProvider(baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger) Provider {
	return &httpProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With().Str("client", "identity").Logger(),
	}
}

// SignUp registers a new account.
func (p *httpProvider) SignUp(ctx context.Context, email, password string) (Credentials, error) {
	return p.authenticate(ctx, "signUp", email, password, signUpMessages)
}

// SignIn authenticates an existing account.
func (p *httpProvider) SignIn(ctx context.Context, email, password string) (Credentials, error) {
	return p.authenticate(ctx, "signInWithPassword", email, password, signInMessages)
}

type authRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type authResponse struct {
	LocalID   string `json:"localId"`
	IDToken   string `json:"idToken"`
	ExpiresIn string `json:"expiresIn"`
}

type authErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *httpProvider) authenticate(ctx context.Context, action, email, password string, messages map[string]string) (Credentials, error) {
	body, err := json.Marshal(authRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to encode auth request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1/accounts:%s?key=%s", p.baseURL, action, url.QueryEscape(p.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		p.logger.Error().Err(err).Str("action", action).Msg("identity request failed")
		return Credentials{}, fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read identity response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var rejection authErrorResponse
		_ = json.Unmarshal(respBody, &rejection)

		reason := rejection.Error.Message
		message, known := messages[reason]
		if !known {
			message = genericAuthMessage
		}

		p.logger.Warn().
			Str("action", action).
			Str("reason", reason).
			Int("status", resp.StatusCode).
			Msg("authentication rejected")
		return Credentials{}, &model.AuthError{Reason: reason, Message: message}
	}

	var success authResponse
	if err := json.Unmarshal(respBody, &success); err != nil {
		return Credentials{}, fmt.Errorf("failed to decode identity response: %w", err)
	}

	expiresIn, err := strconv.Atoi(success.ExpiresIn)
	if err != nil {
		return Credentials{}, fmt.Errorf("invalid expiresIn %q: %w", success.ExpiresIn, err)
	}

	p.logger.Debug().Str("action", action).Str("user_id", success.LocalID).Msg("authenticated")
	return Credentials{
		UserID:    success.LocalID,
		Token:     success.IDToken,
		ExpiresIn: time.Duration(expiresIn) * time.Second,
	}, nil
}
