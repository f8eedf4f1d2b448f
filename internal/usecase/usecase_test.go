package usecase

import (
	"context"
	"errors"
	"testing"

	"movie-api/internal/data/entity"
	"movie-api/internal/dto/request"
	"movie-api/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	ctx   context.Context
	store *store
	svc   *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := newStore()
	tokens := utils.NewTokenManager(utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1, Issuer: "movie-api"})
	return &fixture{
		ctx:   context.Background(),
		store: st,
		svc:   NewService(st.repository(), tokens, zap.NewNop()),
	}
}

func (f *fixture) signup(t *testing.T, username string) int64 {
	t.Helper()
	user, err := f.svc.Auth.Signup(f.ctx, &request.SignupRequest{
		Email:    username + "@example.com",
		Username: username,
		FullName: "User " + username,
		Password: "secret123",
	})
	require.NoError(t, err)
	return user.ID
}

func (f *fixture) movie(t *testing.T, ownerID int64, title, genre string) int64 {
	t.Helper()
	movie, err := f.svc.Movie.CreateMovie(f.ctx, ownerID, &request.MovieRequest{Title: title, Genre: genre})
	require.NoError(t, err)
	return movie.ID
}

func (f *fixture) comment(t *testing.T, userID, movieID int64, body string) int64 {
	t.Helper()
	c, err := f.svc.Comment.CreateComment(f.ctx, userID, movieID, &request.CommentRequest{Comment: body})
	require.NoError(t, err)
	return c.ID
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []int{1}, 1},
		{"even spread", []int{4, 6, 8}, 6},
		{"two decimals", []int{1, 2, 2}, 1.67},
		{"half to even", []int{1, 1, 1, 1, 1, 1, 1, 2}, 1.12},
		{"max", []int{10, 10}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AverageRating(tt.values), 1e-9)
		})
	}
}

func TestIsOwner(t *testing.T) {
	assert.True(t, IsOwner(3, 3))
	assert.False(t, IsOwner(3, 4))
}

func TestSignup(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "alice")

	t.Run("duplicate email", func(t *testing.T) {
		_, err := f.svc.Auth.Signup(f.ctx, &request.SignupRequest{
			Email: "alice@example.com", Username: "alice2", FullName: "A", Password: "secret123",
		})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := f.svc.Auth.Signup(f.ctx, &request.SignupRequest{
			Email: "other@example.com", Username: "alice", FullName: "A", Password: "secret123",
		})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("invalid payload", func(t *testing.T) {
		_, err := f.svc.Auth.Signup(f.ctx, &request.SignupRequest{Email: "nope", Username: "b", Password: "1"})
		require.ErrorIs(t, err, ErrValidation)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "Email")
		assert.Contains(t, verr.Fields, "Password")
	})

	t.Run("password is hashed", func(t *testing.T) {
		stored, _ := f.store.repository().User.FindByUsername(f.ctx, "alice")
		require.NotNil(t, stored)
		assert.NotEqual(t, "secret123", stored.PasswordHash)
		assert.True(t, utils.CheckPasswordHash("secret123", stored.PasswordHash))
	})
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	f := newFixture(t)
	userID := f.signup(t, "bob")

	token, err := f.svc.Auth.Login(f.ctx, &request.LoginRequest{Username: "bob", Password: "secret123"}, ClientInfo{UserAgent: "test"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)

	gotID, session, err := f.svc.Auth.Authenticate(f.ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)

	require.NoError(t, f.svc.Auth.Logout(f.ctx, session))

	_, _, err = f.svc.Auth.Authenticate(f.ctx, token.AccessToken)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "carol")

	_, err := f.svc.Auth.Login(f.ctx, &request.LoginRequest{Username: "carol", Password: "wrong"}, ClientInfo{})
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, err = f.svc.Auth.Login(f.ctx, &request.LoginRequest{Username: "nobody", Password: "secret123"}, ClientInfo{})
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = f.svc.Auth.Authenticate(f.ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestLoginEmailMatchWinsOverUsername(t *testing.T) {
	f := newFixture(t)
	users := f.store.repository().User

	emailHash, _ := utils.HashPassword("email-owner")
	usernameHash, _ := utils.HashPassword("username-owner")
	_, err := users.Create(f.ctx, &entity.User{Email: "dan@example.com", Username: "dan", PasswordHash: emailHash})
	require.NoError(t, err)
	_, err = users.Create(f.ctx, &entity.User{Email: "x@example.com", Username: "dan@example.com", PasswordHash: usernameHash})
	require.NoError(t, err)

	_, err = f.svc.Auth.Login(f.ctx, &request.LoginRequest{Username: "dan@example.com", Password: "email-owner"}, ClientInfo{})
	assert.NoError(t, err)

	_, err = f.svc.Auth.Login(f.ctx, &request.LoginRequest{Username: "dan@example.com", Password: "username-owner"}, ClientInfo{})
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestUserUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	erin := f.signup(t, "erin")
	frank := f.signup(t, "frank")

	_, err := f.svc.User.UpdateUser(f.ctx, erin, frank, &request.UserUpdateRequest{FullName: strPtr("Hacked")})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.svc.User.UpdateUser(f.ctx, 999, frank, &request.UserUpdateRequest{FullName: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.User.UpdateUser(f.ctx, erin, erin, &request.UserUpdateRequest{Username: strPtr("frank")})
	assert.ErrorIs(t, err, ErrConflict)

	updated, err := f.svc.User.UpdateUser(f.ctx, erin, erin, &request.UserUpdateRequest{FullName: strPtr("Erin E")})
	require.NoError(t, err)
	assert.Equal(t, "Erin E", updated.FullName)
	assert.Equal(t, "erin", updated.Username)
	assert.Equal(t, "erin@example.com", updated.Email)

	_, err = f.svc.User.UpdateUser(f.ctx, erin, erin, &request.UserUpdateRequest{Password: strPtr("newsecret")})
	require.NoError(t, err)
	_, err = f.svc.Auth.Login(f.ctx, &request.LoginRequest{Username: "erin", Password: "newsecret"}, ClientInfo{})
	assert.NoError(t, err)
	_, err = f.svc.Auth.Login(f.ctx, &request.LoginRequest{Username: "erin", Password: "secret123"}, ClientInfo{})
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	assert.ErrorIs(t, f.svc.User.DeleteUser(f.ctx, erin, frank), ErrUnauthorized)
	require.NoError(t, f.svc.User.DeleteUser(f.ctx, erin, erin))

	gone, err := f.store.repository().User.FindByEmail(f.ctx, "erin@example.com")
	require.NoError(t, err)
	assert.Nil(t, gone)

	_, err = f.svc.User.GetUser(f.ctx, erin)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPasswordChangeRevokesExistingSessions(t *testing.T) {
	f := newFixture(t)
	gina := f.signup(t, "gina")
	hank := f.signup(t, "hank")

	login := func(username, password string) string {
		token, err := f.svc.Auth.Login(f.ctx, &request.LoginRequest{Username: username, Password: password}, ClientInfo{})
		require.NoError(t, err)
		return token.AccessToken
	}
	ginaOld := login("gina", "secret123")
	hankToken := login("hank", "secret123")

	_, err := f.svc.User.UpdateUser(f.ctx, gina, gina, &request.UserUpdateRequest{FullName: strPtr("Gina G")})
	require.NoError(t, err)
	gotID, _, err := f.svc.Auth.Authenticate(f.ctx, ginaOld)
	require.NoError(t, err, "profile edits keep sessions alive")
	assert.Equal(t, gina, gotID)

	_, err = f.svc.User.UpdateUser(f.ctx, gina, gina, &request.UserUpdateRequest{Password: strPtr("rotated99")})
	require.NoError(t, err)

	_, _, err = f.svc.Auth.Authenticate(f.ctx, ginaOld)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	gotID, _, err = f.svc.Auth.Authenticate(f.ctx, hankToken)
	require.NoError(t, err)
	assert.Equal(t, hank, gotID)

	gotID, _, err = f.svc.Auth.Authenticate(f.ctx, login("gina", "rotated99"))
	require.NoError(t, err)
	assert.Equal(t, gina, gotID)
}

func TestMovieOwnership(t *testing.T) {
	f := newFixture(t)
	owner := f.signup(t, "gina")
	other := f.signup(t, "hank")
	movieID := f.movie(t, owner, "Heat", "Crime")

	_, err := f.svc.Movie.UpdateMovie(f.ctx, movieID, other, &request.MovieUpdateRequest{Title: strPtr("Cold")})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.svc.Movie.UpdateMovie(f.ctx, 12345, other, &request.MovieUpdateRequest{Title: strPtr("Cold")})
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := f.svc.Movie.UpdateMovie(f.ctx, movieID, owner, &request.MovieUpdateRequest{ReleaseYear: intPtr(1995)})
	require.NoError(t, err)
	assert.Equal(t, "Heat", updated.Title)
	assert.Equal(t, "Crime", updated.Genre)
	assert.Equal(t, 1995, *updated.ReleaseYear)

	updated, err = f.svc.Movie.UpdateMovie(f.ctx, movieID, owner, &request.MovieUpdateRequest{Description: strPtr("Pacino and De Niro")})
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	updated, err = f.svc.Movie.UpdateMovie(f.ctx, movieID, owner, &request.MovieUpdateRequest{Description: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.Description)
	assert.Equal(t, 1995, *updated.ReleaseYear)

	detail, err := f.svc.Movie.GetMovie(f.ctx, movieID)
	require.NoError(t, err)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, "gina", detail.Owner.Username)

	assert.ErrorIs(t, f.svc.Movie.DeleteMovie(f.ctx, movieID, other), ErrUnauthorized)
	require.NoError(t, f.svc.Movie.DeleteMovie(f.ctx, movieID, owner))

	_, err = f.svc.Movie.GetMovie(f.ctx, movieID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMovieLookups(t *testing.T) {
	f := newFixture(t)
	owner := f.signup(t, "ivan")
	f.movie(t, owner, "Alien", "Horror")
	f.movie(t, owner, "Aliens", "Action")

	byGenre, err := f.svc.Movie.GetMoviesByGenre(f.ctx, "Horror", request.PageRequest{})
	require.NoError(t, err)
	require.Len(t, byGenre.Data, 1)
	assert.Equal(t, "Alien", byGenre.Data[0].Title)

	_, err = f.svc.Movie.GetMoviesByGenre(f.ctx, "Western", request.PageRequest{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Movie.GetMoviesByTitle(f.ctx, "Predator", request.PageRequest{})
	assert.ErrorIs(t, err, ErrNotFound)

	page, err := f.svc.Movie.GetMovies(f.ctx, request.PageRequest{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Aliens", page.Data[0].Title)

	mine, err := f.svc.Movie.GetUserMovies(f.ctx, owner, request.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, mine.Data, 2)
}

func TestRateMovieOncePerUser(t *testing.T) {
	f := newFixture(t)
	user := f.signup(t, "judy")
	movieID := f.movie(t, user, "Up", "Animation")

	first, err := f.svc.Rating.RateMovie(f.ctx, user, movieID, &request.RatingRequest{RatingValue: 7})
	require.NoError(t, err)

	_, err = f.svc.Rating.RateMovie(f.ctx, user, movieID, &request.RatingRequest{RatingValue: 2})
	assert.ErrorIs(t, err, ErrConflict)

	stored, err := f.svc.Rating.GetRating(f.ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, stored.RatingValue)

	_, err = f.svc.Rating.RateMovie(f.ctx, user, 999, &request.RatingRequest{RatingValue: 5})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Rating.RateMovie(f.ctx, user, movieID, &request.RatingRequest{RatingValue: 11})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAverageRatingForMovie(t *testing.T) {
	f := newFixture(t)
	owner := f.signup(t, "kim")
	movieID := f.movie(t, owner, "Jaws", "Thriller")

	avg, err := f.svc.Rating.GetAverageRating(f.ctx, movieID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg.AvgRating)

	for i, v := range []int{4, 6, 8} {
		rater := f.signup(t, []string{"rater1", "rater2", "rater3"}[i])
		_, err := f.svc.Rating.RateMovie(f.ctx, rater, movieID, &request.RatingRequest{RatingValue: v})
		require.NoError(t, err)
	}

	avg, err = f.svc.Rating.GetAverageRating(f.ctx, movieID)
	require.NoError(t, err)
	assert.Equal(t, movieID, avg.MovieID)
	assert.Equal(t, "Jaws", avg.MovieTitle)
	assert.Equal(t, owner, avg.OwnerID)
	assert.Equal(t, 6.0, avg.AvgRating)

	_, err = f.svc.Rating.GetAverageRating(f.ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRatingOwnership(t *testing.T) {
	f := newFixture(t)
	owner := f.signup(t, "lee")
	other := f.signup(t, "max")
	movieID := f.movie(t, owner, "Rocky", "Drama")

	rating, err := f.svc.Rating.RateMovie(f.ctx, owner, movieID, &request.RatingRequest{RatingValue: 8})
	require.NoError(t, err)

	_, err = f.svc.Rating.UpdateRating(f.ctx, rating.ID, other, &request.RatingUpdateRequest{RatingValue: intPtr(1)})
	assert.ErrorIs(t, err, ErrUnauthorized)

	updated, err := f.svc.Rating.UpdateRating(f.ctx, rating.ID, owner, &request.RatingUpdateRequest{RatingValue: intPtr(9)})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.RatingValue)

	assert.ErrorIs(t, f.svc.Rating.DeleteRating(f.ctx, rating.ID, other), ErrUnauthorized)
	require.NoError(t, f.svc.Rating.DeleteRating(f.ctx, rating.ID, owner))
	assert.ErrorIs(t, f.svc.Rating.DeleteRating(f.ctx, rating.ID, owner), ErrNotFound)
}

func TestReplyToCopiesMovieAndParent(t *testing.T) {
	f := newFixture(t)
	user := f.signup(t, "nina")
	f.movie(t, user, "Filler", "Drama")
	movieID := f.movie(t, user, "Her", "Romance")
	parentID := f.comment(t, user, movieID, "Loved it")

	reply, err := f.svc.Comment.ReplyTo(f.ctx, user, parentID, &request.CommentRequest{Comment: "hi"})
	require.NoError(t, err)
	assert.Equal(t, movieID, reply.MovieID)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, parentID, *reply.ParentID)

	before := len(f.store.comments)
	_, err = f.svc.Comment.ReplyTo(f.ctx, user, 9999, &request.CommentRequest{Comment: "hi"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, f.store.comments, before)
}

func TestCommentThreadsCountDirectReplies(t *testing.T) {
	f := newFixture(t)
	user := f.signup(t, "oscar")
	movieID := f.movie(t, user, "Big", "Comedy")
	root := f.comment(t, user, movieID, "**root**")

	first, err := f.svc.Comment.ReplyTo(f.ctx, user, root, &request.CommentRequest{Comment: "one"})
	require.NoError(t, err)
	_, err = f.svc.Comment.ReplyTo(f.ctx, user, root, &request.CommentRequest{Comment: "two"})
	require.NoError(t, err)
	_, err = f.svc.Comment.ReplyTo(f.ctx, user, first.ID, &request.CommentRequest{Comment: "nested"})
	require.NoError(t, err)

	thread, err := f.svc.Comment.GetComment(f.ctx, root)
	require.NoError(t, err)
	assert.Equal(t, int64(2), thread.Replies)
	assert.Equal(t, "oscar", thread.Author.Username)
	assert.Nil(t, thread.ParentID)
	assert.Contains(t, thread.CommentHTML, "<strong>root</strong>")

	threads, err := f.svc.Comment.GetMovieComments(f.ctx, movieID, request.PageRequest{})
	require.NoError(t, err)
	require.Len(t, threads.Data, 4)
	assert.Equal(t, int64(1), threads.Data[1].Replies)
	assert.Equal(t, int64(0), threads.Data[3].Replies)

	replies, err := f.svc.Comment.GetReplies(f.ctx, root, request.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, replies.Data, 2)

	_, err = f.svc.Comment.GetReplies(f.ctx, 9999, request.PageRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentMutationsAreOwnerGated(t *testing.T) {
	f := newFixture(t)
	author := f.signup(t, "pam")
	other := f.signup(t, "quinn")
	movieID := f.movie(t, author, "Tron", "Sci-Fi")
	commentID := f.comment(t, author, movieID, "original")

	_, err := f.svc.Comment.UpdateComment(f.ctx, commentID, other, &request.CommentUpdateRequest{Comment: strPtr("defaced")})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.svc.Comment.UpdateComment(f.ctx, 9999, other, &request.CommentUpdateRequest{Comment: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, f.svc.Comment.DeleteComment(f.ctx, commentID, other), ErrUnauthorized)
	assert.ErrorIs(t, f.svc.Comment.DeleteComment(f.ctx, 9999, other), ErrNotFound)

	updated, err := f.svc.Comment.UpdateComment(f.ctx, commentID, author, &request.CommentUpdateRequest{Comment: strPtr("edited")})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Comment)
	assert.Equal(t, movieID, updated.MovieID)

	require.NoError(t, f.svc.Comment.DeleteComment(f.ctx, commentID, author))
	_, err = f.svc.Comment.GetComment(f.ctx, commentID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletingMovieCascades(t *testing.T) {
	f := newFixture(t)
	user := f.signup(t, "rita")
	movieID := f.movie(t, user, "Seven", "Crime")
	f.comment(t, user, movieID, "dark")
	_, err := f.svc.Rating.RateMovie(f.ctx, user, movieID, &request.RatingRequest{RatingValue: 9})
	require.NoError(t, err)

	require.NoError(t, f.svc.Movie.DeleteMovie(f.ctx, movieID, user))

	assert.Empty(t, f.store.ratings)
	assert.Empty(t, f.store.comments)
}
