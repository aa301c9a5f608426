package models

// Amenity is a named feature places can offer, unique by name.
type Amenity struct {
	Base
	Name string `json:"name" validate:"required"`
}

// Validate checks the construction-time constraints on the amenity fields.
func (a *Amenity) Validate() error {
	return validateStruct(a)
}
