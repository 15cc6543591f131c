package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-manager/backend/logging"
	"task-manager/backend/models"
	"task-manager/backend/utils"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserIDFromContext returns the authenticated user's id attached by
// JWTAuthMiddleware.
func UserIDFromContext(ctx context.Context) (primitive.ObjectID, bool) {
	id, ok := ctx.Value(userIDKey).(primitive.ObjectID)
	return id, ok
}

// WithUserID is used by tests to simulate a resolved identity.
func WithUserID(ctx context.Context, id primitive.ObjectID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func reject(w http.ResponseWriter, r *http.Request, reason string) {
	logging.Logger.Warnf("Event ID: AUTH_REJECTED, Description: %s for request to %s %s", reason, r.Method, r.URL.Path)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(models.Fail("Not authorized to access this route"))
}

// JWTAuthMiddleware resolves the acting user from the bearer token and
// attaches the id to the request context. Requests without a valid token
// never reach the resource handlers.
func JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			reject(w, r, "Authorization header missing")
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			reject(w, r, "Bearer prefix missing in Authorization header")
			return
		}

		claims, err := utils.ValidateToken(tokenStr)
		if err != nil {
			reject(w, r, "Invalid token")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			reject(w, r, "Malformed user id in token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// EnableCORS allows the single-page client to call the API from another
// origin.
func EnableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
