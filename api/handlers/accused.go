package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maptheaccused/maptheaccused-api/api"
	"github.com/maptheaccused/maptheaccused-api/config"
	"github.com/maptheaccused/maptheaccused-api/databases"
	"github.com/maptheaccused/maptheaccused-api/geocoder"
	"github.com/maptheaccused/maptheaccused-api/models"
)

// Accused exported for testing purposes
type Accused struct {
	DB  databases.AccusedDatabase
	Geo geocoder.Geocoder
}

type createAccusedRequest struct {
	FullName      string   `json:"full_name"`
	PhoneNumbers  []string `json:"phone_numbers"`
	Address       string   `json:"address"`
	FraudAmount   float64  `json:"fraud_amount"`
	CaseID        string   `json:"case_id"`
	FIRDetails    string   `json:"fir_details"`
	PoliceStation string   `json:"police_station"`
	Tags          []string `json:"tags"`
	ProfilePhoto  *string  `json:"profile_photo"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

// coordinateSupplied reports whether the caller sent a usable coordinate.
// Zero counts as unsupplied, frontends send 0,0 for "unknown".
func coordinateSupplied(v *float64) bool {
	return v != nil && *v != 0
}

// CreateAccusedHandler creates a new accused record. When the caller does not
// supply both coordinates the address is geocoded inline; a failed geocode
// stores null coordinates rather than failing the create.
func (a Accused) CreateAccusedHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("no authenticated user", http.StatusUnauthorized, w, fmt.Errorf("missing user in context"))
		return
	}

	var req createAccusedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	record := models.Accused{
		AccusedID:     uuid.NewString(),
		FullName:      req.FullName,
		PhoneNumbers:  req.PhoneNumbers,
		Address:       req.Address,
		FraudAmount:   req.FraudAmount,
		CaseID:        req.CaseID,
		FIRDetails:    req.FIRDetails,
		PoliceStation: req.PoliceStation,
		Tags:          req.Tags,
		ProfilePhoto:  req.ProfilePhoto,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		CreatedAt:     primitive.NewDateTimeFromTime(time.Now().UTC()),
		CreatedBy:     user.Username,
	}

	if !coordinateSupplied(record.Latitude) || !coordinateSupplied(record.Longitude) {
		record.Latitude, record.Longitude = nil, nil
		if coords := a.Geo.Resolve(r.Context(), record.Address); coords != nil {
			record.Latitude = &coords.Latitude
			record.Longitude = &coords.Longitude
		}
	}

	if _, err := a.DB.InsertOne(r.Context(), record); err != nil {
		config.ErrorStatus("failed to insert accused record", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.CreatedAccusedResponse{
		Message:   "Accused record created successfully",
		AccusedID: record.AccusedID,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// AccusedHandler returns all accused records, a full unpaginated scan
func (a Accused) AccusedHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := a.DB.Find(r.Context(), bson.M{})
	if err != nil {
		config.ErrorStatus("failed to get accused records", http.StatusInternalServerError, w, err)
		return
	}
	// the frontend requires a list even when the collection is empty
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

// AccusedByIDHandler returns an accused record by ID
func (a Accused) AccusedByIDHandler(w http.ResponseWriter, r *http.Request) {
	accusedID := mux.Vars(r)["accused_id"]

	dbResp, err := a.DB.FindOne(r.Context(), bson.M{"accused_id": accusedID})
	if err != nil {
		config.ErrorStatus("accused not found", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateAccusedHandler applies a partial update to an accused record. Only
// supplied fields change; supplying an address re-runs geocoding and
// overwrites the coordinates unconditionally, nulling them when the new
// geocode fails.
func (a Accused) UpdateAccusedHandler(w http.ResponseWriter, r *http.Request) {
	accusedID := mux.Vars(r)["accused_id"]

	user, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("no authenticated user", http.StatusUnauthorized, w, fmt.Errorf("missing user in context"))
		return
	}

	var req models.AccusedUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	update := bson.M{}
	if req.FullName != nil {
		update["full_name"] = *req.FullName
	}
	if req.PhoneNumbers != nil {
		update["phone_numbers"] = req.PhoneNumbers
	}
	if req.Address != nil {
		update["address"] = *req.Address
	}
	if req.FraudAmount != nil {
		update["fraud_amount"] = *req.FraudAmount
	}
	if req.CaseID != nil {
		update["case_id"] = *req.CaseID
	}
	if req.FIRDetails != nil {
		update["fir_details"] = *req.FIRDetails
	}
	if req.PoliceStation != nil {
		update["police_station"] = *req.PoliceStation
	}
	if req.Tags != nil {
		update["tags"] = req.Tags
	}
	if req.ProfilePhoto != nil {
		update["profile_photo"] = *req.ProfilePhoto
	}

	if len(update) == 0 {
		config.ErrorStatus("no data provided for update", http.StatusBadRequest, w, fmt.Errorf("empty update payload"))
		return
	}

	if req.Address != nil {
		update["latitude"], update["longitude"] = nil, nil
		if coords := a.Geo.Resolve(r.Context(), *req.Address); coords != nil {
			update["latitude"] = coords.Latitude
			update["longitude"] = coords.Longitude
		}
	}

	update["updated_at"] = primitive.NewDateTimeFromTime(time.Now().UTC())
	update["updated_by"] = user.Username

	res, err := a.DB.UpdateOne(r.Context(), bson.M{"accused_id": accusedID}, bson.M{"$set": update})
	if err != nil {
		config.ErrorStatus("failed to update accused record", http.StatusInternalServerError, w, err)
		return
	}
	if res.MatchedCount == 0 {
		config.ErrorStatus("accused not found", http.StatusNotFound, w, fmt.Errorf("no record matched accused_id %s", accusedID))
		return
	}

	b, err := json.Marshal(models.MessageResponse{Message: "Accused record updated successfully"})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteAccusedHandler deletes an accused record by ID, superadmin only
func (a Accused) DeleteAccusedHandler(w http.ResponseWriter, r *http.Request) {
	accusedID := mux.Vars(r)["accused_id"]

	deleted, err := a.DB.DeleteOne(r.Context(), bson.M{"accused_id": accusedID})
	if err != nil {
		config.ErrorStatus("failed to delete accused record", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("accused not found", http.StatusNotFound, w, fmt.Errorf("no record matched accused_id %s", accusedID))
		return
	}

	b, err := json.Marshal(models.MessageResponse{Message: "Accused record deleted successfully"})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
