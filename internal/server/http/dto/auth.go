package dto

// CredentialsRequest is the body of sign-up and login requests.
type CredentialsRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CallbackURL string `json:"callbackUrl,omitempty"`
}

// SessionResponse describes the signed-in customer.
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	UID           string `json:"uid,omitempty"`
	Email         string `json:"email,omitempty"`
	Admin         bool   `json:"admin"`
	Redirect      string `json:"redirect,omitempty"`
}

// ErrorResponse is returned for every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
