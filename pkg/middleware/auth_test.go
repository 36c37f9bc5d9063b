package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"socialapp/pkg/session"
	"socialapp/pkg/user"

	"github.com/golang/mock/gomock"
	"go.uber.org/zap"
)

type userResolverStub struct {
	user *user.User
	err  error
}

func (s *userResolverStub) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return s.user, s.err
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthPublicRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	sm := session.NewMockSessionManager(ctrl)

	called := false
	h := Auth(zap.NewNop().Sugar(), sm, &userResolverStub{}, okHandler(&called))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	h.ServeHTTP(w, r)

	if !called {
		t.Fatal("expected the public route to pass through")
	}
}

func TestAuthRejectsBadToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	sm := session.NewMockSessionManager(ctrl)
	sm.EXPECT().Check(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("invalid token"))

	called := false
	h := Auth(zap.NewNop().Sugar(), sm, &userResolverStub{}, okHandler(&called))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/posts", nil)
	h.ServeHTTP(w, r)

	if called {
		t.Fatal("expected the protected route to be blocked")
	}
	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong status code: %d, but expected %d", w.Result().StatusCode, http.StatusUnauthorized)
	}
}

func TestAuthRejectsDeletedUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	sm := session.NewMockSessionManager(ctrl)
	sm.EXPECT().Check(gomock.Any(), gomock.Any()).Return(&session.Session{UserID: 24}, nil)

	called := false
	h := Auth(zap.NewNop().Sugar(), sm, &userResolverStub{user: nil}, okHandler(&called))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/vote", nil)
	h.ServeHTTP(w, r)

	if called {
		t.Fatal("expected a valid token for a deleted user to be blocked")
	}
	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong status code: %d, but expected %d", w.Result().StatusCode, http.StatusUnauthorized)
	}
}

func TestAuthPutsSessionInContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	sm := session.NewMockSessionManager(ctrl)
	sm.EXPECT().Check(gomock.Any(), gomock.Any()).Return(&session.Session{UserID: 24}, nil)

	resolver := &userResolverStub{user: &user.User{ID: 24, Email: "vectoreal@example.com"}}

	var got *session.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = session.SessionFromContext(r.Context())
	})

	h := Auth(zap.NewNop().Sugar(), sm, resolver, next)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/posts", nil)
	h.ServeHTTP(w, r)

	if got == nil || got.UserID != int64(24) {
		t.Fatalf("expected the session in the request context, but was %v", got)
	}
}

func TestAuthUserDeleteIsProtected(t *testing.T) {
	ctrl := gomock.NewController(t)
	sm := session.NewMockSessionManager(ctrl)
	sm.EXPECT().Check(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("invalid token"))

	called := false
	h := Auth(zap.NewNop().Sugar(), sm, &userResolverStub{}, okHandler(&called))

	// DELETE needs a session, GET does not
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/users/1", nil))
	if called || w.Result().StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected delete to be blocked, status %d", w.Result().StatusCode)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/1", nil))
	if !called {
		t.Fatal("expected get to pass through")
	}
}
