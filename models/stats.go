package models

// DashboardStats holds the aggregated dashboard response, computed over the
// full record set at call time
type DashboardStats struct {
	TotalAccused     int64          `json:"total_accused"`
	TotalFraudAmount float64        `json:"total_fraud_amount"`
	TopFraudTypes    []TagCount     `json:"top_fraud_types"`
	CityStats        []StationStats `json:"city_stats"`
}

// TagCount is one entry of the top-tags aggregation
type TagCount struct {
	ID    string `json:"_id" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// StationStats is one entry of the per-police-station aggregation
type StationStats struct {
	ID          string  `json:"_id" bson:"_id"`
	Count       int64   `json:"count" bson:"count"`
	TotalAmount float64 `json:"total_amount" bson:"total_amount"`
}
