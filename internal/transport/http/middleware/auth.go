package middleware

import (
	"context"
	"net/http"
	"strings"

	"hradmin/internal/domain/auth"
)

type ctxKey string

const ctxKeyUser ctxKey = "user"

// Auth parses a bearer token when one is sent. Requests without a valid token
// continue anonymously, or as fallback when it is set, which is how a
// deployment with authentication disabled acts as a single local operator.
func Auth(secret string, fallback *auth.UserContext) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims := bearerClaims(secret, r); claims != nil {
				next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), claims.User())))
				return
			}
			if fallback != nil {
				next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), *fallback)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerClaims(secret string, r *http.Request) *auth.Claims {
	if secret == "" {
		return nil
	}
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil
	}
	claims, err := auth.ParseToken(secret, parts[1])
	if err != nil {
		return nil
	}
	return claims
}

func WithUser(ctx context.Context, user auth.UserContext) context.Context {
	return context.WithValue(ctx, ctxKeyUser, user)
}

func GetUser(ctx context.Context) (auth.UserContext, bool) {
	user, ok := ctx.Value(ctxKeyUser).(auth.UserContext)
	return user, ok
}

// Can reports whether the current user's role grants permission.
func Can(ctx context.Context, permission string) bool {
	user, ok := GetUser(ctx)
	return ok && auth.HasPermission(user.Role, permission)
}
