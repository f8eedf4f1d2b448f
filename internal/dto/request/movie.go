package request

type MovieRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Genre       string  `json:"genre" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty"`
	ReleaseYear *int    `json:"release_year,omitempty" validate:"omitempty,min=1800,max=3000"`
}

type MovieUpdateRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Genre       *string `json:"genre,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty"`
	ReleaseYear *int    `json:"release_year,omitempty" validate:"omitempty,min=1800,max=3000"`
}
