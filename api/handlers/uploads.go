package handlers

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/maptheaccused/maptheaccused-api/config"
)

// Uploads handles profile photo upload signing. Photos themselves live on the
// CDN; records only keep the returned reference.
type Uploads struct {
	Config config.Config
}

// GenerateSignature signs an upload request so the client can push a profile
// photo straight to the CDN
func (u Uploads) GenerateSignature(w http.ResponseWriter, r *http.Request) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	h := hmac.New(sha1.New, []byte(u.Config.CloudinaryAPISecret))
	h.Write([]byte("timestamp=" + timestamp + "&upload_preset=" + u.Config.CloudinaryUploadPreset))
	signature := hex.EncodeToString(h.Sum(nil))

	response := map[string]string{
		"timestamp": timestamp,
		"signature": signature,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
