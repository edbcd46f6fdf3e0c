package models

import "time"

type City struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	State         string     `json:"state"`
	Country       string     `json:"country"`
	Description   string     `json:"description,omitempty"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	PopularPlaces StringList `json:"popularPlaces"`
	IsPopular     bool       `json:"isPopular"`
	CreatedBy     string     `json:"createdBy,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	IsActive      bool       `json:"isActive"`
}

type CityInput struct {
	Name          string     `json:"name" binding:"required,max=100"`
	State         string     `json:"state" binding:"required,max=100"`
	Country       string     `json:"country" binding:"max=100"`
	Description   string     `json:"description"`
	ImageURL      string     `json:"imageUrl" binding:"omitempty,url"`
	PopularPlaces StringList `json:"popularPlaces"`
	IsPopular     bool       `json:"isPopular"`
}

// CityRef is the id/name pair used by pickers and suggestions.
type CityRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
