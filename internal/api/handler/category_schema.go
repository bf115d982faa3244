package handler

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type deletedResponse struct {
	Message string `json:"message"`
}
