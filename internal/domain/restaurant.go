package domain

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is a directory entry. Name is unique.
type Restaurant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Rating    float64   `json:"rating"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RestaurantPage is one page of a listing.
type RestaurantPage struct {
	Items []Restaurant `json:"content"`
	Page  int          `json:"page"`
	Size  int          `json:"size"`
	Total int64        `json:"totalElements"`
}
