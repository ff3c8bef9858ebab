package valuation

// LookupRequest represents the query parameters from the frontend.
type LookupRequest struct {
	Address string `form:"address" binding:"required,min=5"`
}

// Estimate is a valuation result for one address. RentValue is optional
// upstream and stays nil when absent.
type Estimate struct {
	Value     float64  `json:"value"`
	RentValue *float64 `json:"rentValue,omitempty"`
}

// apiEstimate mirrors the upstream lookup payload. Value is a pointer so a
// present-but-empty response is distinguishable from zero.
type apiEstimate struct {
	Value     *float64 `json:"value"`
	RentValue *float64 `json:"rentValue"`
}
