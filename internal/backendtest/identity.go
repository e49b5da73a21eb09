package backendtest

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type identityRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SeedUser registers an account directly and returns its user ID.
func (s *Server) SeedUser(email, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	user := &userRecord{id: uuid.NewString(), passwordHash: hash}
	s.users[email] = user
	return user.id
}

// DisableUser marks an account as disabled so sign-in is rejected.
func (s *Server) DisableUser(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[email]; ok {
		user.disabled = true
	}
}

// IssueToken mints a valid auth token for the user, bypassing sign-in.
func (s *Server) IssueToken(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.tokens[token] = userID
	return token
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	var req identityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	_, exists := s.users[req.Email]
	s.mu.Unlock()
	if exists {
		writeRejection(w, "EMAIL_EXISTS")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		http.Error(w, "hash failure", http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	user := &userRecord{id: uuid.NewString(), passwordHash: hash}
	s.users[req.Email] = user
	token := uuid.NewString()
	s.tokens[token] = user.id
	s.mu.Unlock()

	writeCredentials(w, req.Email, user.id, token)
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	var req identityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	user, ok := s.users[req.Email]
	s.mu.Unlock()
	if !ok {
		writeRejection(w, "EMAIL_NOT_FOUND")
		return
	}
	if user.disabled {
		writeRejection(w, "USER_DISABLED")
		return
	}

	if err := bcrypt.CompareHashAndPassword(user.passwordHash, []byte(req.Password)); err != nil {
		writeRejection(w, "INVALID_PASSWORD")
		return
	}

	s.mu.Lock()
	token := uuid.NewString()
	s.tokens[token] = user.id
	s.mu.Unlock()

	writeCredentials(w, req.Email, user.id, token)
}

func writeCredentials(w http.ResponseWriter, email, userID, token string) {
	writeJSON(w, map[string]string{
		"kind":      "identitytoolkit#VerifyPasswordResponse",
		"localId":   userID,
		"email":     email,
		"idToken":   token,
		"expiresIn": "3600",
	})
}

func writeRejection(w http.ResponseWriter, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": 400, "message": code},
	})
}
