// Package middleware provides HTTP middleware for the clinic desk API.
package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"clinicdesk/internal/domain"
)

// Auth validates the JWT Bearer token issued at login and stores the
// resulting identity in the request context. Returns 401 when the token is
// missing, invalid, or carries an unknown role.
func Auth(jwtSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				tokenStr := strings.TrimPrefix(auth, "Bearer ")
				token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
					return jwtSecret, nil
				}, jwt.WithValidMethods([]string{"HS256"}))

				if err == nil && token.Valid {
					if id, ok := identityFromClaims(token.Claims); ok {
						ctx := domain.WithIdentity(r.Context(), id)
						next.ServeHTTP(w, r.WithContext(ctx))
						return
					}
				}
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"code":    401,
				"message": "unauthorized: provide a valid Bearer token",
			})
		})
	}
}

func identityFromClaims(claims jwt.Claims) (domain.Identity, bool) {
	mapClaims, ok := claims.(jwt.MapClaims)
	if !ok {
		return domain.Identity{}, false
	}
	sub, _ := mapClaims["sub"].(string)
	username, _ := mapClaims["username"].(string)
	roleStr, _ := mapClaims["role"].(string)

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || username == "" {
		return domain.Identity{}, false
	}
	role, err := domain.ParseRole(roleStr)
	if err != nil {
		return domain.Identity{}, false
	}
	return domain.Identity{UserID: userID, Username: username, Role: role}, true
}
