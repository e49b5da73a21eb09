// Package action holds the action creators: they perform the asynchronous
// backend work for a user intent and translate the outcome into synchronous
// store events. Each call produces exactly one terminal outcome, either a
// sequence of dispatches on success or an error, never both.
package action

import "kartshop/internal/store"

// Dispatcher receives the events an action creator produces and exposes the
// identity lookups creators need. *store.Store satisfies it.
type Dispatcher interface {
	Dispatch(ev store.Event)
	CurrentUserID() string
	CurrentToken() string
}
