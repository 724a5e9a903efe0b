package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/maptheaccused/maptheaccused-api/api"
	"github.com/maptheaccused/maptheaccused-api/config"
	"github.com/maptheaccused/maptheaccused-api/databases"
	"github.com/maptheaccused/maptheaccused-api/models"
)

// User exported for testing purposes
type User struct {
	DB databases.UserDatabase
}

// UsersHandler returns all user accounts, superadmin only. Password hashes
// are never serialized.
func (u User) UsersHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := u.DB.Find(r.Context(), bson.M{})
	if err != nil {
		config.ErrorStatus("failed to get users", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.User{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteUserHandler deletes a user account by ID, superadmin only. A caller
// can never delete their own account.
func (u User) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	current, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("no authenticated user", http.StatusUnauthorized, w, fmt.Errorf("missing user in context"))
		return
	}

	if _, err := u.DB.FindOne(r.Context(), bson.M{"user_id": userID, "username": current.Username}); err == nil {
		config.ErrorStatus("cannot delete your own account", http.StatusBadRequest, w, fmt.Errorf("self-deletion is not allowed"))
		return
	}

	deleted, err := u.DB.DeleteOne(r.Context(), bson.M{"user_id": userID})
	if err != nil {
		config.ErrorStatus("failed to delete user", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("user not found", http.StatusNotFound, w, fmt.Errorf("no user matched user_id %s", userID))
		return
	}

	b, err := json.Marshal(models.MessageResponse{Message: "User deleted successfully"})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
