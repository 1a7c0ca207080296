package model

import "time"

// Category ссылка на категорию тура в веб-приложении
type Category struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}

type Trip struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Destination    string     `json:"destination"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	Price          int64      `json:"price"`
	Category       Category   `json:"category"`
	ImageURL       string     `json:"imageUrl"`
	Options        []string   `json:"options"`
	Capacity       int        `json:"capacity"`
	AvailableSlots int        `json:"availableSlots"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
