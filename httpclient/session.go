// httpclient/session.go
package httpclient

import (
	"context"
)

// SessionExpiredHandler is told once per failed refresh that the stored session is gone.
// It runs after the tokens have been purged.
type SessionExpiredHandler interface {
	SessionExpired(ctx context.Context, cause error)
}

// SessionExpiredFunc adapts a plain function to SessionExpiredHandler.
type SessionExpiredFunc func(ctx context.Context, cause error)

func (f SessionExpiredFunc) SessionExpired(ctx context.Context, cause error) {
	f(ctx, cause)
}

// LoginRedirect sends the user to LoginRoute through Navigate.
type LoginRedirect struct {
	LoginRoute string
	Navigate   func(ctx context.Context, route string)
}

func (l LoginRedirect) SessionExpired(ctx context.Context, _ error) {
	if l.Navigate != nil {
		l.Navigate(ctx, l.LoginRoute)
	}
}
