package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/maptheaccused/maptheaccused-api/api"
	"github.com/maptheaccused/maptheaccused-api/config"
	"github.com/maptheaccused/maptheaccused-api/databases"
	"github.com/maptheaccused/maptheaccused-api/geocoder"
	"github.com/maptheaccused/maptheaccused-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	userDB := databases.NewUserDatabase(a.dbHelper)
	accusedDB := databases.NewAccusedDatabase(a.dbHelper)
	geo := geocoder.New(a.Config.OpenCageAPIKey)

	guard := api.Auth{DB: userDB, Config: a.Config}

	auth := Auth{DB: userDB, Config: a.Config}
	accused := Accused{DB: accusedDB, Geo: geo}
	users := User{DB: userDB}
	search := Search{DB: accusedDB}
	dashboard := Dashboard{DB: accusedDB}
	seed := Seed{DB: accusedDB, Geo: geo}
	uploads := Uploads{Config: a.Config}

	r := mux.NewRouter()

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api").Subrouter()

	apiCreate.Handle("/auth/register", guard.ProtectRole(models.RoleSuperAdmin, auth.RegisterHandler)).Methods("POST")
	apiCreate.Handle("/auth/login", http.HandlerFunc(auth.LoginHandler)).Methods("POST")
	apiCreate.Handle("/auth/me", guard.Protect(auth.MeHandler)).Methods("GET")

	apiCreate.Handle("/accused", guard.ProtectRole(models.RoleAdmin, accused.CreateAccusedHandler)).Methods("POST")
	apiCreate.Handle("/accused", guard.Protect(accused.AccusedHandler)).Methods("GET")
	apiCreate.Handle("/accused/{accused_id}", guard.Protect(accused.AccusedByIDHandler)).Methods("GET")
	apiCreate.Handle("/accused/{accused_id}", guard.ProtectRole(models.RoleAdmin, accused.UpdateAccusedHandler)).Methods("PUT")
	apiCreate.Handle("/accused/{accused_id}", guard.ProtectRole(models.RoleSuperAdmin, accused.DeleteAccusedHandler)).Methods("DELETE")

	apiCreate.Handle("/search", guard.Protect(search.SearchHandler)).Methods("POST")
	apiCreate.Handle("/dashboard/stats", guard.Protect(dashboard.StatsHandler)).Methods("GET")

	apiCreate.Handle("/users", guard.ProtectRole(models.RoleSuperAdmin, users.UsersHandler)).Methods("GET")
	apiCreate.Handle("/users/{user_id}", guard.ProtectRole(models.RoleSuperAdmin, users.DeleteUserHandler)).Methods("DELETE")

	apiCreate.Handle("/seed-data", guard.ProtectRole(models.RoleSuperAdmin, seed.SeedDataHandler)).Methods("POST")
	apiCreate.Handle("/uploads/signature", guard.ProtectRole(models.RoleAdmin, uploads.GenerateSignature)).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("maptheaccused-api has connected to the database")

	ctx, cancel := api.WithQueryTimeout(context.Background())
	defer cancel()

	userDB := databases.NewUserDatabase(a.dbHelper)
	if err := userDB.EnsureIndexes(ctx); err != nil {
		zap.S().With(err).Error("failed to create user indexes")
		return err
	}
	if err := userDB.EnsureSuperAdmin(ctx); err != nil {
		zap.S().With(err).Error("failed to bootstrap superadmin")
		return err
	}

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
