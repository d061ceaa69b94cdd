package categories

type CreateCategoryRequest struct {
	Label string `json:"label" validate:"required,max=100"`
	Color string `json:"color" validate:"required,hexcolor"`
}

type UpdateCategoryRequest struct {
	Label string `json:"label" validate:"required,max=100"`
	Color string `json:"color" validate:"required,hexcolor"`
}
