package main

import (
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/maptheaccused/maptheaccused-api/api"
	"github.com/maptheaccused/maptheaccused-api/api/handlers"
	"github.com/maptheaccused/maptheaccused-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Config.Validate(); err != nil {
		zap.S().Fatalw("invalid configuration", "error", err)
	}

	if err := a.Initialize(); err != nil { //initialize database and router
		zap.S().Fatalw("failed to initialize", "error", err)
	}

	port := a.Config.Port
	if port == "" {
		port = "8001"
	}
	zap.S().Infow("maptheaccused-api is up and running",
		"port", port,
		"url", a.Config.BaseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", port), api.CORS(a.Router)))
}
