package dto

import "time"

type ProfileResponse struct {
	UID           string     `json:"uid"`
	DisplayName   string     `json:"displayName"`
	Email         string     `json:"email"`
	PhoneNumber   string     `json:"phoneNumber"`
	Address       string     `json:"address"`
	PhotoURL      string     `json:"photoURL,omitempty"`
	FavoriteItems []string   `json:"favoriteItems"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
}

// ProfileUpdateRequest lists editable fields. Omitted fields are unchanged.
type ProfileUpdateRequest struct {
	DisplayName *string `json:"displayName"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
	PhotoURL    *string `json:"photoURL"`
}
