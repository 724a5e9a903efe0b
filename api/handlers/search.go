package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/maptheaccused/maptheaccused-api/config"
	"github.com/maptheaccused/maptheaccused-api/databases"
	"github.com/maptheaccused/maptheaccused-api/models"
)

// Search struct mostly used for mocking tests
type Search struct {
	DB databases.AccusedDatabase
}

type searchRequest struct {
	Query      string `json:"query"`
	SearchType string `json:"search_type"`
}

// SearchHandler returns accused records matching the query by case-insensitive
// substring. The search_type selects the scanned field; anything unrecognized
// falls back to a union across name, address, phone numbers, case id and tags.
func (s Search) SearchHandler(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	query := strings.ToLower(strings.TrimSpace(req.Query))
	searchType := strings.ToLower(req.SearchType)

	var filter bson.M
	switch searchType {
	case "phone":
		filter = bson.M{"phone_numbers": bson.M{"$regex": query, "$options": "i"}}
	case "name":
		filter = bson.M{"full_name": bson.M{"$regex": query, "$options": "i"}}
	case "address":
		filter = bson.M{"address": bson.M{"$regex": query, "$options": "i"}}
	default:
		filter = bson.M{"$or": []bson.M{
			{"full_name": bson.M{"$regex": query, "$options": "i"}},
			{"address": bson.M{"$regex": query, "$options": "i"}},
			{"phone_numbers": bson.M{"$regex": query, "$options": "i"}},
			{"case_id": bson.M{"$regex": query, "$options": "i"}},
			{"tags": bson.M{"$regex": query, "$options": "i"}},
		}}
	}

	dbResp, err := s.DB.Find(r.Context(), filter)
	if err != nil {
		config.ErrorStatus("failed to search accused records", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Accused{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
