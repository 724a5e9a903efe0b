package models

// ErrorMessageResponse is the body ErrorStatus writes for every failed request
type ErrorMessageResponse struct {
	Response string `json:"response"`
}

// MessageResponse is the generic success body for write operations
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedAccusedResponse is the success body for accused record creation
type CreatedAccusedResponse struct {
	Message   string `json:"message"`
	AccusedID string `json:"accused_id"`
}

// HealthCheckResponse returns the health check response struct
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
