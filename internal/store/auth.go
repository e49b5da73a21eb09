package store

// AuthState holds the signed-in user's identity. Both fields are empty when
// nobody is signed in.
type AuthState struct {
	UserID string
	Token  string
}

// ReduceAuth folds an auth event into a new auth state.
func ReduceAuth(state AuthState, ev AuthEvent) AuthState {
	switch e := ev.(type) {
	case Authenticated:
		return AuthState{UserID: e.UserID, Token: e.Token}
	case LoggedOut:
		return AuthState{}
	}
	return state
}
