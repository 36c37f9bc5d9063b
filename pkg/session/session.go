package session

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dgrijalva/jwt-go"
)

type key int

const (
	SessionKey key = 1
)

type Session struct {
	UserID  int64  `json:"user_id"`
	TokenID string `json:"jti"`
	jwt.StandardClaims
}

type SessionManager interface {
	Create(ctx context.Context, userID int64) (string, error)
	Check(ctx context.Context, r *http.Request) (*Session, error)
}

func SessionFromContext(ctx context.Context) (*Session, error) {
	sess, ok := ctx.Value(SessionKey).(*Session)
	if !ok {
		return nil, fmt.Errorf("session not found")
	}

	return sess, nil
}
