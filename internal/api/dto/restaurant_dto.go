package dto

// RestaurantRequest payload for creating or updating a restaurant.
type RestaurantRequest struct {
	Name     string  `json:"name" validate:"required,notblank,max=255"`
	Rating   float64 `json:"rating" validate:"min=1,max=5"`
	Location string  `json:"location" validate:"required,notblank,max=255"`
}
