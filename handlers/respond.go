package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-manager/backend/middleware"
	"task-manager/backend/models"
)

func writeJSON(w http.ResponseWriter, status int, resp models.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// currentUser pulls the resolved identity out of the request context. A
// missing identity means the route was wired without the auth middleware;
// reject rather than proceed unscoped.
func currentUser(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.Fail("Not authorized to access this route"))
		return primitive.NilObjectID, false
	}
	return userID, true
}
