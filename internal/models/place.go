package models

// Place represents a rental listing owned by a user. OwnerID is set once at
// creation and never changes afterwards.
type Place struct {
	Base
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Latitude    float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" validate:"gte=-180,lte=180"`
	OwnerID     string  `json:"owner_id" validate:"required"`

	// AmenityIDs is the stored association; Amenities carries the resolved
	// records on detail reads.
	AmenityIDs []string  `json:"amenity_ids,omitempty"`
	Amenities  []Amenity `json:"amenities,omitempty"`
}

// Validate checks the construction-time constraints on the place fields.
func (p *Place) Validate() error {
	return validateStruct(p)
}

// ResourceOwnerID identifies the user accountable for the place.
func (p *Place) ResourceOwnerID() string {
	return p.OwnerID
}
