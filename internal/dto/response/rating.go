package response

import (
	"time"

	"movie-api/internal/data/entity"
)

type RatingResponse struct {
	ID          int64     `json:"id"`
	RatingValue int       `json:"rating_value"`
	UserID      int64     `json:"user_id"`
	MovieID     int64     `json:"movie_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func RatingToResponse(rating *entity.Rating) RatingResponse {
	return RatingResponse{
		ID:          rating.ID,
		RatingValue: rating.RatingValue,
		UserID:      rating.UserID,
		MovieID:     rating.MovieID,
		CreatedAt:   rating.CreatedAt,
	}
}

func RatingsToResponse(ratings []*entity.Rating) []RatingResponse {
	out := make([]RatingResponse, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, RatingToResponse(r))
	}
	return out
}
