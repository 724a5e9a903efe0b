package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/maptheaccused/maptheaccused-api/api"
	"github.com/maptheaccused/maptheaccused-api/api/handlers"
	"github.com/maptheaccused/maptheaccused-api/config"
	"github.com/maptheaccused/maptheaccused-api/databases/mocks"
	"github.com/maptheaccused/maptheaccused-api/models"
)

func authTestConfig() config.Config {
	return config.Config{
		SecretKey:                "test-secret",
		Algorithm:                "HS256",
		AccessTokenExpireMinutes: 30,
	}
}

func TestAuth_RegisterHandler(t *testing.T) {
	db := &mocks.UserDatabase{}

	var inserted models.User
	db.On("InsertOne", mock.Anything, mock.Anything).
		Return("mocked-id", nil).
		Run(func(args mock.Arguments) {
			inserted = args.Get(1).(models.User)
		})

	u := handlers.Auth{DB: db, Config: authTestConfig()}

	body, _ := json.Marshal(map[string]string{
		"username": "officer1",
		"email":    "officer1@example.com",
		"password": "hunter2",
		"role":     "admin",
	})
	req, _ := http.NewRequest("POST", "/api/auth/register", bytes.NewReader(body))

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.RegisterHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "User created successfully")

	assert.Equal(t, "officer1", inserted.Username)
	assert.Equal(t, models.RoleAdmin, inserted.Role)
	assert.NotEmpty(t, inserted.UserID)
	// only the salted hash may be persisted
	assert.NotEqual(t, "hunter2", inserted.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(inserted.Password), []byte("hunter2")))
}

func TestAuth_RegisterHandlerDefaultsRole(t *testing.T) {
	db := &mocks.UserDatabase{}

	var inserted models.User
	db.On("InsertOne", mock.Anything, mock.Anything).
		Return("mocked-id", nil).
		Run(func(args mock.Arguments) {
			inserted = args.Get(1).(models.User)
		})

	u := handlers.Auth{DB: db, Config: authTestConfig()}

	body, _ := json.Marshal(map[string]string{
		"username": "viewer1",
		"email":    "viewer1@example.com",
		"password": "hunter2",
	})
	req, _ := http.NewRequest("POST", "/api/auth/register", bytes.NewReader(body))

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.RegisterHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.RoleUser, inserted.Role)
}

func TestAuth_RegisterHandlerDuplicate(t *testing.T) {
	db := &mocks.UserDatabase{}
	db.On("InsertOne", mock.Anything, mock.Anything).
		Return(nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}})

	u := handlers.Auth{DB: db, Config: authTestConfig()}

	body, _ := json.Marshal(map[string]string{
		"username": "officer1",
		"email":    "officer1@example.com",
		"password": "hunter2",
	})
	req, _ := http.NewRequest("POST", "/api/auth/register", bytes.NewReader(body))

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.RegisterHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "username or email already exists")
}

func TestAuth_RegisterHandlerMissingFields(t *testing.T) {
	db := &mocks.UserDatabase{}
	u := handlers.Auth{DB: db, Config: authTestConfig()}

	body, _ := json.Marshal(map[string]string{"username": "officer1"})
	req, _ := http.NewRequest("POST", "/api/auth/register", bytes.NewReader(body))

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.RegisterHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	db.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestAuth_LoginHandler(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
	db := &mocks.UserDatabase{}
	db.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.User{Username: "officer1", Password: string(hash), Role: models.RoleAdmin}, nil)

	u := handlers.Auth{DB: db, Config: authTestConfig()}

	body, _ := json.Marshal(map[string]string{"username": "officer1", "password": "hunter2"})
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.LoginHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp models.Token
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, models.RoleAdmin, resp.Role)

	// the token must verify against the signing secret and carry the
	// username as subject
	token, err := jwt.Parse(resp.AccessToken, func(tk *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	assert.NoError(t, err)
	subject, err := token.Claims.GetSubject()
	assert.NoError(t, err)
	assert.Equal(t, "officer1", subject)
}

func TestAuth_LoginHandlerWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
	db := &mocks.UserDatabase{}
	db.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.User{Username: "officer1", Password: string(hash), Role: models.RoleAdmin}, nil)

	u := handlers.Auth{DB: db, Config: authTestConfig()}

	body, _ := json.Marshal(map[string]string{"username": "officer1", "password": "not-hunter2"})
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.LoginHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid credentials")
}

func TestAuth_LoginHandlerUnknownUsername(t *testing.T) {
	db := &mocks.UserDatabase{}
	db.On("FindOne", mock.Anything, mock.Anything).
		Return(nil, errors.New("mongo: no documents in result"))

	u := handlers.Auth{DB: db, Config: authTestConfig()}

	body, _ := json.Marshal(map[string]string{"username": "ghost", "password": "hunter2"})
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.LoginHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid credentials")
}

func TestAuth_MeHandler(t *testing.T) {
	u := handlers.Auth{DB: &mocks.UserDatabase{}, Config: authTestConfig()}

	req, _ := http.NewRequest("GET", "/api/auth/me", nil)
	req = req.WithContext(api.ContextWithUser(req.Context(), &models.User{
		Username: "officer1",
		Email:    "officer1@example.com",
		Role:     models.RoleAdmin,
	}))

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.MeHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "officer1", resp["username"])
	assert.Equal(t, "officer1@example.com", resp["email"])
	assert.Equal(t, models.RoleAdmin, resp["role"])
}

func TestAuth_MeHandlerNoUser(t *testing.T) {
	u := handlers.Auth{DB: &mocks.UserDatabase{}, Config: authTestConfig()}

	req, _ := http.NewRequest("GET", "/api/auth/me", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(u.MeHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
