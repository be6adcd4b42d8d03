package dto

// PageResponse is the view model of a page route.
type PageResponse struct {
	Page    string          `json:"page"`
	Title   string          `json:"title"`
	Session SessionResponse `json:"session"`
	Data    any             `json:"data,omitempty"`
}
