package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Accused holds the structure for the accused collection in mongo.
// Latitude and longitude are either both set or both null; a failed geocode
// leaves both null.
type Accused struct {
	AccusedID     string              `json:"accused_id" bson:"accused_id"`
	FullName      string              `json:"full_name" bson:"full_name"`
	PhoneNumbers  []string            `json:"phone_numbers" bson:"phone_numbers"`
	Address       string              `json:"address" bson:"address"`
	FraudAmount   float64             `json:"fraud_amount" bson:"fraud_amount"`
	CaseID        string              `json:"case_id" bson:"case_id"`
	FIRDetails    string              `json:"fir_details" bson:"fir_details"`
	PoliceStation string              `json:"police_station" bson:"police_station"`
	Tags          []string            `json:"tags" bson:"tags"`
	ProfilePhoto  *string             `json:"profile_photo" bson:"profile_photo"`
	Latitude      *float64            `json:"latitude" bson:"latitude"`
	Longitude     *float64            `json:"longitude" bson:"longitude"`
	CreatedAt     primitive.DateTime  `json:"created_at" bson:"created_at"`
	CreatedBy     string              `json:"created_by" bson:"created_by"`
	UpdatedAt     *primitive.DateTime `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
	UpdatedBy     *string             `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
}

// AccusedUpdate holds the partial-update payload for an accused record.
// Nil fields are left untouched; supplying an address re-runs geocoding.
type AccusedUpdate struct {
	FullName      *string  `json:"full_name"`
	PhoneNumbers  []string `json:"phone_numbers"`
	Address       *string  `json:"address"`
	FraudAmount   *float64 `json:"fraud_amount"`
	CaseID        *string  `json:"case_id"`
	FIRDetails    *string  `json:"fir_details"`
	PoliceStation *string  `json:"police_station"`
	Tags          []string `json:"tags"`
	ProfilePhoto  *string  `json:"profile_photo"`
}
