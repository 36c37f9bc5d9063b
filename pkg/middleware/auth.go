package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"socialapp/pkg/session"
	"socialapp/pkg/user"

	"go.uber.org/zap"
)

// UserResolver checks that the identity encoded in a token still exists.
type UserResolver interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

func needsAuth(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/posts") || strings.HasPrefix(r.URL.Path, "/api/vote") {
		return true
	}

	return strings.HasPrefix(r.URL.Path, "/api/users/") && r.Method == http.MethodDelete
}

func Auth(logger *zap.SugaredLogger, sm session.SessionManager, users UserResolver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !needsAuth(r) {
			next.ServeHTTP(w, r)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()
		sess, err := sm.Check(ctx, r)
		if err != nil {
			logger.Error(err.Error())
			writeUnauthorized(w)
			return
		}

		// a token may outlive its account
		u, err := users.GetByID(ctx, sess.UserID)
		if err != nil {
			logger.Error(err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if u == nil {
			writeUnauthorized(w)
			return
		}

		ctx = context.WithValue(r.Context(), session.SessionKey, sess)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	errorBody, _ := json.Marshal(map[string]string{"message": "unauthorized"})
	w.Write(errorBody)
}
