package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/maptheaccused/maptheaccused-api/models"
)

// Config holds the project config values
type Config struct {
	URL                      string
	DatabaseName             string
	BaseURL                  string
	Port                     string
	SecretKey                string
	Algorithm                string
	AccessTokenExpireMinutes int
	OpenCageAPIKey           string
	CloudinaryUploadPreset   string
	CloudinaryAPISecret      string
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	// load a local .env if one exists, real environment variables win otherwise
	if err := godotenv.Load(); err != nil {
		zap.S().Debugw("no .env file loaded", "error", err)
	}

	expireMinutes, err := strconv.Atoi(os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"))
	if err != nil {
		expireMinutes = 0
	}

	return &Config{
		URL:                      os.Getenv("DB_URI"),
		DatabaseName:             os.Getenv("DB_NAME"),
		BaseURL:                  os.Getenv("BASE_URL"),
		Port:                     os.Getenv("PORT"),
		SecretKey:                os.Getenv("SECRET_KEY"),
		Algorithm:                os.Getenv("ALGORITHM"),
		AccessTokenExpireMinutes: expireMinutes,
		OpenCageAPIKey:           os.Getenv("OPENCAGE_API_KEY"),
		CloudinaryUploadPreset:   os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
		CloudinaryAPISecret:      os.Getenv("CLOUDINARY_API_SECRET"),
	}

}

// Validate returns an error naming the first missing required config value
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"DB_URI", c.URL},
		{"DB_NAME", c.DatabaseName},
		{"SECRET_KEY", c.SecretKey},
		{"ALGORITHM", c.Algorithm},
		{"OPENCAGE_API_KEY", c.OpenCageAPIKey},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("required environment variable %s is not set", r.name)
		}
	}
	if c.AccessTokenExpireMinutes <= 0 {
		return fmt.Errorf("required environment variable ACCESS_TOKEN_EXPIRE_MINUTES is not set")
	}
	// an algorithm the jwt library does not know would only surface as a
	// panic inside the login path, so reject it here
	if jwt.GetSigningMethod(c.Algorithm) == nil {
		return fmt.Errorf("unknown signing algorithm %s", c.Algorithm)
	}
	return nil
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	b, _ := json.Marshal(models.ErrorMessageResponse{
		Response: fmt.Sprintf("%s, %v", message, err),
	})
	w.Write(b)
	return
}
