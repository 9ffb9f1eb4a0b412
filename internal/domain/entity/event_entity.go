package entity

// Event is a scheduled happening. Date is free-form text as entered by the
// client; Description is nil when not provided.
type Event struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Location    string  `json:"location"`
	Description *string `json:"description"`
}
