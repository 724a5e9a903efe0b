package api

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/maptheaccused/maptheaccused-api/config"
	"github.com/maptheaccused/maptheaccused-api/databases"
	"github.com/maptheaccused/maptheaccused-api/models"
)

// Auth verifies bearer tokens and enforces role requirements around the routes
type Auth struct {
	DB     databases.UserDatabase
	Config config.Config
}

// Middleware authenticates the bearer token and stores the resolved user on
// the request context. A missing, malformed, expired or unresolvable token
// yields 401.
func (a Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		reqToken := r.Header.Get("Authorization")
		if !strings.HasPrefix(reqToken, "Bearer ") {
			unauthorized(w, r)
			return
		}
		rawToken := strings.TrimPrefix(reqToken, "Bearer ")

		token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
			return []byte(a.Config.SecretKey), nil
		}, jwt.WithValidMethods([]string{a.Config.Algorithm}), jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			unauthorized(w, r)
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			unauthorized(w, r)
			return
		}

		user, err := a.DB.FindOne(r.Context(), bson.M{"username": subject})
		if err != nil {
			unauthorized(w, r)
			return
		}

		zap.S().Debugf("user %s authenticated", user.Username)
		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

// RequireRole wraps a handler with a role check. The check passes when the
// authenticated user's role equals the required role or is superadmin;
// admin does not satisfy a superadmin requirement.
func (a Auth) RequireRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			unauthorized(w, r)
			return
		}
		if user.Role != role && user.Role != models.RoleSuperAdmin {
			zap.S().Debugw("insufficient permissions",
				"username", user.Username,
				"role", user.Role,
				"required", role,
			)
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": "Insufficient permissions"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Protect authenticates the request before invoking the handler
func (a Auth) Protect(next http.HandlerFunc) http.Handler {
	return a.Middleware(next)
}

// ProtectRole authenticates the request and enforces the given role
func (a Auth) ProtectRole(role string, next http.HandlerFunc) http.Handler {
	return a.Middleware(a.RequireRole(role, next))
}

// CORS wraps the router with the permissive cross-origin policy the frontend
// expects, answering preflight requests directly
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	zap.S().Errorw("unauthorized",
		"url", r.URL)
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error": "unauthorized"}`))
}
