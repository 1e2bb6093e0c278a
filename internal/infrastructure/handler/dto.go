package handler

// ExchangeRateResponse represents the response for the exchange rate endpoint.
// The "searchedDate:" key, colon included, is part of the published contract.
type ExchangeRateResponse struct {
	Message       string `json:"message"`
	Currency      string `json:"currency"`
	SearchedDate  string `json:"searchedDate:"`
	EffectiveDate string `json:"effectiveDate"`
	ExchangeRate  string `json:"exchangeRate"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// HealthResponse represents the response for the health endpoint
type HealthResponse struct {
	Status     string `json:"status"`
	Currencies int    `json:"currencies"`
}
