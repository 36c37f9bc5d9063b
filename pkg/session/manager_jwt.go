package session

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// SessionManagerJWT seals sessions with an HMAC secret held by the server.
// A token is valid until its expiry; there is no revocation.
type SessionManagerJWT struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionsJWTManager(secret []byte, ttl time.Duration) *SessionManagerJWT {
	return &SessionManagerJWT{
		secret: secret,
		ttl:    ttl,
	}
}

func (sm *SessionManagerJWT) Create(ctx context.Context, userID int64) (string, error) {
	sess := &Session{
		UserID:  userID,
		TokenID: uuid.New().String(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(sm.ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sess)
	signed, err := token.SignedString(sm.secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

func (sm *SessionManagerJWT) Check(ctx context.Context, request *http.Request) (*Session, error) {
	authHeader := request.Header.Get("authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, fmt.Errorf("no bearer token")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	payload := &Session{}
	token, err := jwt.ParseWithClaims(tokenString, payload, func(token *jwt.Token) (interface{}, error) {
		method, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok || method.Alg() != "HS256" {
			return nil, fmt.Errorf("bad sign method")
		}
		return sm.secret, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return payload, nil
}
