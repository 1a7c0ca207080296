package model

import "time"

type User struct {
	ID           int64       `json:"id"`
	TelegramID   int64       `json:"telegram_id"`
	FirstName    string      `json:"first_name"`
	LastName     *string     `json:"last_name"`
	Username     *string     `json:"username"`
	ProfilePhoto *string     `json:"profile_photo"`
	NationalCode *string     `json:"national_code,omitempty"`
	Phone        *string     `json:"phone,omitempty"`
	Address      *string     `json:"address,omitempty"`
	Birthdate    *time.Time  `json:"birthdate,omitempty"`
	Superuser    bool        `json:"superuser"`
	Logins       []time.Time `json:"logins"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
