// Package session scopes one authenticated user's cart view: it resolves
// the login email to a user id and owns the lifecycle context that bounds
// every in-flight request started on the session's behalf.
package session

import (
	"context"
	"io"
	"log"

	"github.com/google/uuid"
)

// userResolver maps an authenticated email to the cart-owning user id.
type userResolver interface {
	ResolveUserID(ctx context.Context, email string) (string, error)
}

// Session is one authenticated user's view lifetime. Close cancels the
// lifecycle context so late network results stop being applied.
type Session struct {
	ID     string
	Email  string
	UserID string

	ctx    context.Context
	cancel context.CancelFunc
	logger *log.Logger
}

// Start resolves the user id for email and opens a session under parent.
func Start(parent context.Context, resolver userResolver, email string, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	userID, err := resolver.ResolveUserID(parent, email)
	if err != nil {
		logger.Printf("resolve user id for %s: %v", email, err)
		return nil, err
	}

	ctx, cancel := context.WithCancel(parent)
	s := &Session{
		ID:     uuid.NewString(),
		Email:  email,
		UserID: userID,
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
	logger.Printf("session %s started for user %s", s.ID, userID)
	return s, nil
}

// Context is the lifecycle context; it is done once the session is closed.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Close ends the session. Safe to call more than once.
func (s *Session) Close() {
	s.cancel()
	s.logger.Printf("session %s closed", s.ID)
}
