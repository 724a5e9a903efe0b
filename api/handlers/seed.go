package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maptheaccused/maptheaccused-api/config"
	"github.com/maptheaccused/maptheaccused-api/databases"
	"github.com/maptheaccused/maptheaccused-api/geocoder"
	"github.com/maptheaccused/maptheaccused-api/models"
)

// Seed exported for testing purposes
type Seed struct {
	DB  databases.AccusedDatabase
	Geo geocoder.Geocoder
}

func sampleAccused() []models.Accused {
	return []models.Accused{
		{
			FullName:      "Rajesh Kumar Singh",
			PhoneNumbers:  []string{"+91-9876543210", "+91-8765432109"},
			Address:       "Plot 123, Connaught Place, New Delhi, Delhi 110001",
			FraudAmount:   250000.0,
			CaseID:        "FIR/2024/001",
			FIRDetails:    "Cheating and criminal breach of trust under sections 420, 406 IPC",
			PoliceStation: "Connaught Place Police Station, New Delhi",
			Tags:          []string{"loan fraud", "fake documents"},
		},
		{
			FullName:      "Priya Sharma",
			PhoneNumbers:  []string{"+91-9123456789"},
			Address:       "B-45, Banjara Hills, Hyderabad, Telangana 500034",
			FraudAmount:   180000.0,
			CaseID:        "FIR/2024/002",
			FIRDetails:    "Online investment fraud under IT Act and IPC 420",
			PoliceStation: "Banjara Hills Police Station, Hyderabad",
			Tags:          []string{"crypto scam", "investment fraud"},
		},
		{
			FullName:      "Mohammed Ali Khan",
			PhoneNumbers:  []string{"+91-9898989898", "+91-9797979797"},
			Address:       "456, MG Road, Bengaluru, Karnataka 560001",
			FraudAmount:   500000.0,
			CaseID:        "FIR/2024/003",
			FIRDetails:    "Bank fraud and forgery under sections 420, 468, 471 IPC",
			PoliceStation: "MG Road Police Station, Bengaluru",
			Tags:          []string{"bank fraud", "forgery"},
		},
		{
			FullName:      "Anita Gupta",
			PhoneNumbers:  []string{"+91-9555666777"},
			Address:       "C-78, Sector 15, Noida, Uttar Pradesh 201301",
			FraudAmount:   75000.0,
			CaseID:        "FIR/2024/004",
			FIRDetails:    "Credit card fraud under sections 420, 468 IPC",
			PoliceStation: "Sector 20 Police Station, Noida",
			Tags:          []string{"credit card fraud", "identity theft"},
		},
		{
			FullName:      "Vikram Choudhary",
			PhoneNumbers:  []string{"+91-9111222333"},
			Address:       "Plot 89, Linking Road, Bandra West, Mumbai, Maharashtra 400050",
			FraudAmount:   320000.0,
			CaseID:        "FIR/2024/005",
			FIRDetails:    "Real estate fraud under sections 420, 506 IPC",
			PoliceStation: "Bandra Police Station, Mumbai",
			Tags:          []string{"real estate fraud", "cheating"},
		},
	}
}

// SeedDataHandler wipes the accused collection and inserts the sample fraud
// cases, geocoding each address. Superadmin only.
func (s Seed) SeedDataHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := s.DB.DeleteMany(r.Context(), bson.M{}); err != nil {
		config.ErrorStatus("failed to clear accused records", http.StatusInternalServerError, w, err)
		return
	}

	samples := sampleAccused()
	for i := range samples {
		samples[i].AccusedID = uuid.NewString()
		samples[i].CreatedAt = primitive.NewDateTimeFromTime(time.Now().UTC())
		samples[i].CreatedBy = "system"
		if coords := s.Geo.Resolve(r.Context(), samples[i].Address); coords != nil {
			samples[i].Latitude = &coords.Latitude
			samples[i].Longitude = &coords.Longitude
		}
		if _, err := s.DB.InsertOne(r.Context(), samples[i]); err != nil {
			config.ErrorStatus("failed to insert sample record", http.StatusInternalServerError, w, err)
			return
		}
	}

	b, err := json.Marshal(models.MessageResponse{
		Message: fmt.Sprintf("Successfully seeded %d sample accused records", len(samples)),
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
