package store

import (
	"mime/multipart"

	"github.com/GoStoreRating/GoStoreRating/internal/db/models"
)

// AddStoreRequest is the multipart form of POST /admin/add-store.
type AddStoreRequest struct {
	Name    string                `form:"name" validate:"required"`
	MapLink string                `form:"mapLink" validate:"required"`
	Token   string                `form:"token"`
	Image   *multipart.FileHeader `form:"image" validate:"required"`
}

// AddStoreResponse is returned after a store was added.
type AddStoreResponse struct {
	Message string        `json:"message"`
	Store   *models.Store `json:"store"`
}
