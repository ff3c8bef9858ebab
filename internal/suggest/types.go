package suggest

// LookupRequest represents the query parameters from the frontend.
type LookupRequest struct {
	Query string `form:"q" binding:"required,min=3"`
}

// Candidate is one selectable address suggestion. Text is the full
// display string the wizard stores verbatim as the lead's address.
type Candidate struct {
	Text string `json:"text"`
}

// LookupResponse is the payload for the suggestions endpoint.
type LookupResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type nominatimAddress struct {
	HouseNumber string `json:"house_number"`
	Road        string `json:"road"`
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
	State       string `json:"state"`
	Postcode    string `json:"postcode"`
}

// nominatimResponse mirrors the relevant parts of the OSM search payload.
type nominatimResponse struct {
	DisplayName string           `json:"display_name"`
	Address     nominatimAddress `json:"address"`
}
