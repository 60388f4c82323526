// Package session carries the authenticated caller through a request.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNoSession = errors.New("session: no authenticated caller")

type Session struct {
	CompanyID uuid.UUID
	UserID    uuid.UUID
	Role      string
}

func (s Session) Valid() bool {
	return s.CompanyID != uuid.Nil && s.UserID != uuid.Nil
}

func (s Session) IsOwner() bool {
	return s.Role == "owner" || s.Role == "super_admin"
}

type ctxKey struct{}

func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	if !ok || !s.Valid() {
		return Session{}, false
	}
	return s, true
}

// MustFromContext is for handlers mounted behind the auth middleware.
func MustFromContext(ctx context.Context) Session {
	s, ok := FromContext(ctx)
	if !ok {
		panic(ErrNoSession)
	}
	return s
}
