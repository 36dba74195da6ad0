package request

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

type UpdateCommentRequest struct {
	Text *string `json:"text,omitempty" validate:"omitempty,max=500"`
}
