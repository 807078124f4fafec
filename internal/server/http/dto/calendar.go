package dto

// ClosedDateResponse describes one blocked calendar day.
type ClosedDateResponse struct {
	Date   string `json:"date"`
	Type   string `json:"type"`
	Reason string `json:"reason,omitempty"`
}

// CloseDateRequest blocks a day for orders. Date uses the 2006-01-02 layout.
type CloseDateRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// OpenDateRequest lifts an admin-declared closure.
type OpenDateRequest struct {
	Date string `json:"date"`
}
