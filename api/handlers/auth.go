package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/maptheaccused/maptheaccused-api/api"
	"github.com/maptheaccused/maptheaccused-api/config"
	"github.com/maptheaccused/maptheaccused-api/databases"
	"github.com/maptheaccused/maptheaccused-api/models"
)

// Auth exported for testing purposes
type Auth struct {
	DB     databases.UserDatabase
	Config config.Config
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type meResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// RegisterHandler creates a new user account, superadmin only
func (a Auth) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		config.ErrorStatus("username, email and password are required", http.StatusBadRequest, w, fmt.Errorf("missing required fields"))
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	_, err = a.DB.InsertOne(r.Context(), models.User{
		UserID:    uuid.NewString(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hash),
		Role:      req.Role,
		CreatedAt: primitive.NewDateTimeFromTime(time.Now().UTC()),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			config.ErrorStatus("username or email already exists", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to insert user", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.MessageResponse{Message: "User created successfully"})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// LoginHandler verifies the credentials and returns a signed, time-limited
// bearer token. Unknown usernames and wrong passwords are indistinguishable
// to the caller.
func (a Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	user, err := a.DB.FindOne(r.Context(), bson.M{"username": req.Username})
	if err != nil {
		config.ErrorStatus("invalid credentials", http.StatusUnauthorized, w, fmt.Errorf("unknown username"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		config.ErrorStatus("invalid credentials", http.StatusUnauthorized, w, fmt.Errorf("password mismatch"))
		return
	}

	expiry := time.Duration(a.Config.AccessTokenExpireMinutes) * time.Minute
	token := jwt.NewWithClaims(jwt.GetSigningMethod(a.Config.Algorithm), jwt.MapClaims{
		"sub": user.Username,
		"exp": time.Now().Add(expiry).Unix(),
	})
	signed, err := token.SignedString([]byte(a.Config.SecretKey))
	if err != nil {
		config.ErrorStatus("failed to sign token", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.Token{
		AccessToken: signed,
		TokenType:   "bearer",
		Role:        user.Role,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MeHandler returns the identity resolved by the auth middleware
func (a Auth) MeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("no authenticated user", http.StatusUnauthorized, w, fmt.Errorf("missing user in context"))
		return
	}

	b, err := json.Marshal(meResponse{
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
