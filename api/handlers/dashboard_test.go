package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/maptheaccused/maptheaccused-api/api/handlers"
	"github.com/maptheaccused/maptheaccused-api/databases/mocks"
	"github.com/maptheaccused/maptheaccused-api/models"
)

func TestDashboard_StatsHandler(t *testing.T) {
	db := &mocks.AccusedDatabase{}

	db.On("CountDocuments", mock.Anything, bson.M{}).Return(int64(5), nil)
	db.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).
		Return(nil).
		Run(func(args mock.Arguments) {
			switch out := args.Get(2).(type) {
			case *[]struct {
				Total float64 `bson:"total"`
			}:
				*out = []struct {
					Total float64 `bson:"total"`
				}{{Total: 1325000}}
			case *[]models.TagCount:
				*out = []models.TagCount{
					{ID: "online fraud", Count: 2},
					{ID: "bank fraud", Count: 2},
				}
			case *[]models.StationStats:
				*out = []models.StationStats{
					{ID: "Cyber Crime Police Station, Mumbai", Count: 1, TotalAmount: 250000},
				}
			}
		})

	h := handlers.Dashboard{DB: db}

	req, _ := http.NewRequest("GET", "/api/dashboard/stats", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.StatsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var stats models.DashboardStats
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, int64(5), stats.TotalAccused)
	assert.Equal(t, 1325000.0, stats.TotalFraudAmount)
	assert.Len(t, stats.TopFraudTypes, 2)
	assert.Equal(t, "online fraud", stats.TopFraudTypes[0].ID)
	assert.Len(t, stats.CityStats, 1)
	assert.Equal(t, 250000.0, stats.CityStats[0].TotalAmount)

	db.AssertNumberOfCalls(t, "Aggregate", 3)
}

func TestDashboard_StatsHandlerEmptyCollection(t *testing.T) {
	db := &mocks.AccusedDatabase{}

	db.On("CountDocuments", mock.Anything, bson.M{}).Return(int64(0), nil)
	db.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	h := handlers.Dashboard{DB: db}

	req, _ := http.NewRequest("GET", "/api/dashboard/stats", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.StatsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	// empty sets serialize as [] and 0, never null
	var raw map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	assert.Equal(t, "0", string(raw["total_accused"]))
	assert.Equal(t, "0", string(raw["total_fraud_amount"]))
	assert.Equal(t, "[]", string(raw["top_fraud_types"]))
	assert.Equal(t, "[]", string(raw["city_stats"]))
}

func TestDashboard_StatsHandlerCountError(t *testing.T) {
	db := &mocks.AccusedDatabase{}

	db.On("CountDocuments", mock.Anything, bson.M{}).Return(int64(0), errors.New("connection reset"))

	h := handlers.Dashboard{DB: db}

	req, _ := http.NewRequest("GET", "/api/dashboard/stats", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.StatsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	db.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything, mock.Anything)
}
