package request

type RatingRequest struct {
	RatingValue int `json:"rating_value" validate:"required,min=1,max=10"`
}

type RatingUpdateRequest struct {
	RatingValue *int `json:"rating_value,omitempty" validate:"omitempty,min=1,max=10"`
}
