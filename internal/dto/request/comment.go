package request

type CommentRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=5000"`
}

type CommentUpdateRequest struct {
	Comment *string `json:"comment,omitempty" validate:"omitempty,min=1,max=5000"`
}
