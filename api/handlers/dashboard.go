package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/maptheaccused/maptheaccused-api/api"
	"github.com/maptheaccused/maptheaccused-api/config"
	"github.com/maptheaccused/maptheaccused-api/databases"
	"github.com/maptheaccused/maptheaccused-api/models"
)

// Dashboard exported for testing purposes
type Dashboard struct {
	DB databases.AccusedDatabase
}

// StatsHandler computes the dashboard aggregates over the full current record
// set. Nothing is cached; top-N tie order is whatever the store returns.
func (d Dashboard) StatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	totalAccused, err := d.DB.CountDocuments(ctx, bson.M{})
	if err != nil {
		config.ErrorStatus("failed to count accused records", http.StatusInternalServerError, w, err)
		return
	}

	var totals []struct {
		Total float64 `bson:"total"`
	}
	err = d.DB.Aggregate(ctx, []bson.M{
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$fraud_amount"}}},
	}, &totals)
	if err != nil {
		config.ErrorStatus("failed to aggregate fraud amounts", http.StatusInternalServerError, w, err)
		return
	}
	var totalAmount float64
	if len(totals) > 0 {
		totalAmount = totals[0].Total
	}

	var topTags []models.TagCount
	err = d.DB.Aggregate(ctx, []bson.M{
		{"$unwind": "$tags"},
		{"$group": bson.M{"_id": "$tags", "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
		{"$limit": 5},
	}, &topTags)
	if err != nil {
		config.ErrorStatus("failed to aggregate tags", http.StatusInternalServerError, w, err)
		return
	}
	if len(topTags) == 0 {
		topTags = []models.TagCount{}
	}

	var stations []models.StationStats
	err = d.DB.Aggregate(ctx, []bson.M{
		{"$group": bson.M{
			"_id":          "$police_station",
			"count":        bson.M{"$sum": 1},
			"total_amount": bson.M{"$sum": "$fraud_amount"},
		}},
		{"$sort": bson.M{"count": -1}},
		{"$limit": 10},
	}, &stations)
	if err != nil {
		config.ErrorStatus("failed to aggregate police stations", http.StatusInternalServerError, w, err)
		return
	}
	if len(stations) == 0 {
		stations = []models.StationStats{}
	}

	b, err := json.Marshal(models.DashboardStats{
		TotalAccused:     totalAccused,
		TotalFraudAmount: totalAmount,
		TopFraudTypes:    topTags,
		CityStats:        stations,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
