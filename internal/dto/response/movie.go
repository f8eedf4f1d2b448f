package response

import (
	"time"

	"movie-api/internal/data/entity"
)

type MovieResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	Description *string   `json:"description,omitempty"`
	ReleaseYear *int      `json:"release_year,omitempty"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovieDetailResponse adds the owner to a single movie lookup.
type MovieDetailResponse struct {
	MovieResponse
	Owner *UserResponse `json:"owner,omitempty"`
}

type AverageRatingResponse struct {
	MovieID    int64   `json:"movie_id"`
	MovieTitle string  `json:"movie_title"`
	OwnerID    int64   `json:"owner_id"`
	AvgRating  float64 `json:"avg_rating"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Genre:       movie.Genre,
		Description: movie.Description,
		ReleaseYear: movie.ReleaseYear,
		UserID:      movie.UserID,
		CreatedAt:   movie.CreatedAt,
	}
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, MovieToResponse(m))
	}
	return out
}

func MovieToDetailResponse(movie *entity.Movie, owner *entity.User) MovieDetailResponse {
	resp := MovieDetailResponse{MovieResponse: MovieToResponse(movie)}
	if owner != nil {
		o := UserToResponse(owner)
		resp.Owner = &o
	}
	return resp
}
