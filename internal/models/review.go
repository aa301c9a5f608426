package models

// Review is a rating and free-text comment a user leaves on a place. The
// author and target references are set at creation and never change; a user
// holds at most one review per place.
type Review struct {
	Base
	Text    string `json:"text" validate:"required"`
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	UserID  string `json:"user_id" validate:"required"`
	PlaceID string `json:"place_id" validate:"required"`
}

// Validate checks the construction-time constraints on the review fields.
func (r *Review) Validate() error {
	return validateStruct(r)
}

// ResourceOwnerID identifies the review's author as its owner.
func (r *Review) ResourceOwnerID() string {
	return r.UserID
}
