package model

import "time"

// Profile holds customer details kept between orders.
type Profile struct {
	UID           string
	DisplayName   string
	Email         string
	PhoneNumber   string
	Address       string
	PhotoURL      string
	FavoriteItems []string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	LastLogin     *time.Time
}

// ProfileUpdate carries editable profile fields. Nil fields are left as is.
type ProfileUpdate struct {
	DisplayName *string `validate:"omitempty,max=100"`
	PhoneNumber *string `validate:"omitempty,max=32"`
	Address     *string `validate:"omitempty,max=500"`
	PhotoURL    *string `validate:"omitempty,url"`
}
