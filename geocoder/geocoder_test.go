package geocoder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maptheaccused/maptheaccused-api/geocoder"
)

func TestClient_Resolve(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"q":           r.URL.Query().Get("q"),
			"key":         r.URL.Query().Get("key"),
			"countrycode": r.URL.Query().Get("countrycode"),
			"limit":       r.URL.Query().Get("limit"),
		}
		assert.Equal(t, "/geocode/v1/json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"total_results": 1,
			"results": [{"geometry": {"lat": 28.6315, "lng": 77.2167}}]
		}`))
	}))
	defer srv.Close()

	c := geocoder.NewWithBaseURL("test-key", srv.URL)
	coords := c.Resolve(context.Background(), "Connaught Place, New Delhi")

	assert.NotNil(t, coords)
	assert.Equal(t, 28.6315, coords.Latitude)
	assert.Equal(t, 77.2167, coords.Longitude)

	assert.Equal(t, map[string]string{
		"q":           "Connaught Place, New Delhi",
		"key":         "test-key",
		"countrycode": "in",
		"limit":       "1",
	}, gotQuery)
}

func TestClient_ResolveNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total_results": 0, "results": []}`))
	}))
	defer srv.Close()

	c := geocoder.NewWithBaseURL("test-key", srv.URL)
	assert.Nil(t, c.Resolve(context.Background(), "nowhere at all"))
}

func TestClient_ResolveProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	c := geocoder.NewWithBaseURL("test-key", srv.URL)
	assert.Nil(t, c.Resolve(context.Background(), "Connaught Place, New Delhi"))
}

func TestClient_ResolveTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := geocoder.NewWithBaseURL("test-key", srv.URL)
	assert.Nil(t, c.Resolve(context.Background(), "Connaught Place, New Delhi"))
}
