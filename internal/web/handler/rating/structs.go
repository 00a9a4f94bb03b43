package rating

import "github.com/GoStoreRating/GoStoreRating/internal/db/models"

// RateRequest is the JSON body of POST /store/:slug/rate.
type RateRequest struct {
	UserName   string `json:"userName" validate:"required"`
	UserMobile string `json:"userMobile" validate:"required"`
	Rating     int    `json:"rating" validate:"min=1,max=5"`
}

// RateResponse is returned after a rating was stored.
type RateResponse struct {
	Message string         `json:"message"`
	Rating  *models.Rating `json:"rating"`
}
