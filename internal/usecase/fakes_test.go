package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"movie-api/internal/data/entity"
	"movie-api/internal/data/repository"

	"github.com/google/uuid"
)

// store is an in-memory stand-in for the SQL repositories. It mirrors the
// cascade and uniqueness rules of the schema.
type store struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]*entity.User
	movies   map[int64]*entity.Movie
	ratings  map[int64]*entity.Rating
	comments map[int64]*entity.Comment
	sessions map[uuid.UUID]*entity.Session
}

func newStore() *store {
	return &store{
		users:    map[int64]*entity.User{},
		movies:   map[int64]*entity.Movie{},
		ratings:  map[int64]*entity.Rating{},
		comments: map[int64]*entity.Comment{},
		sessions: map[uuid.UUID]*entity.Session{},
	}
}

func (s *store) repository() *repository.Repository {
	return &repository.Repository{
		User:    fakeUsers{s},
		Session: fakeSessions{s},
		Movie:   fakeMovies{s},
		Rating:  fakeRatings{s},
		Comment: fakeComments{s},
	}
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func sortedValues[T any](m map[int64]*T, keep func(*T) bool) []*T {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]*T, 0, len(keys))
	for _, k := range keys {
		if keep == nil || keep(m[k]) {
			cp := *m[k]
			out = append(out, &cp)
		}
	}
	return out
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

// users

type fakeUsers struct{ s *store }

func (f fakeUsers) Create(_ context.Context, u *entity.User) (*entity.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, other := range f.s.users {
		if other.Email == u.Email || other.Username == u.Username {
			return nil, repository.ErrDuplicate
		}
	}
	cp := *u
	cp.ID = f.s.id()
	cp.CreatedAt = time.Now()
	f.s.users[cp.ID] = &cp
	return clone(&cp), nil
}

func (f fakeUsers) FindByID(_ context.Context, id int64) (*entity.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return clone(f.s.users[id]), nil
}

func (f fakeUsers) find(match func(*entity.User) bool) *entity.User {
	for _, u := range sortedValues(f.s.users, nil) {
		if match(u) {
			return u
		}
	}
	return nil
}

func (f fakeUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.find(func(u *entity.User) bool { return u.Email == email }), nil
}

func (f fakeUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.find(func(u *entity.User) bool { return u.Username == username }), nil
}

func (f fakeUsers) FindByEmailOrUsername(ctx context.Context, credential string) (*entity.User, error) {
	if u, _ := f.FindByEmail(ctx, credential); u != nil {
		return u, nil
	}
	return f.FindByUsername(ctx, credential)
}

func (f fakeUsers) FindAll(_ context.Context, offset, limit int) ([]*entity.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return window(sortedValues(f.s.users, nil), offset, limit), nil
}

func (f fakeUsers) Update(_ context.Context, u *entity.User) (*entity.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.users[u.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	f.s.users[u.ID] = &cp
	return clone(&cp), nil
}

func (f fakeUsers) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.s.users, id)
	for mid, m := range f.s.movies {
		if m.UserID == id {
			f.s.deleteMovie(mid)
		}
	}
	for rid, r := range f.s.ratings {
		if r.UserID == id {
			delete(f.s.ratings, rid)
		}
	}
	for cid, c := range f.s.comments {
		if c.UserID == id {
			f.s.deleteComment(cid)
		}
	}
	for tok, sess := range f.s.sessions {
		if sess.UserID == id {
			delete(f.s.sessions, tok)
		}
	}
	return nil
}

// movies

type fakeMovies struct{ s *store }

func (f fakeMovies) Create(_ context.Context, m *entity.Movie) (*entity.Movie, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.users[m.UserID]; !ok {
		return nil, repository.ErrReference
	}
	cp := *m
	cp.ID = f.s.id()
	cp.CreatedAt = time.Now()
	f.s.movies[cp.ID] = &cp
	return clone(&cp), nil
}

func (f fakeMovies) FindByID(_ context.Context, id int64) (*entity.Movie, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return clone(f.s.movies[id]), nil
}

func (f fakeMovies) Update(_ context.Context, m *entity.Movie) (*entity.Movie, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.movies[m.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	cp := *m
	f.s.movies[m.ID] = &cp
	return clone(&cp), nil
}

func (f fakeMovies) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.movies[id]; !ok {
		return repository.ErrNotFound
	}
	f.s.deleteMovie(id)
	return nil
}

func (s *store) deleteMovie(id int64) {
	delete(s.movies, id)
	for rid, r := range s.ratings {
		if r.MovieID == id {
			delete(s.ratings, rid)
		}
	}
	for cid, c := range s.comments {
		if c.MovieID == id {
			s.deleteComment(cid)
		}
	}
}

func (f fakeMovies) FindAll(_ context.Context, offset, limit int) ([]*entity.Movie, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return window(sortedValues(f.s.movies, nil), offset, limit), nil
}

func (f fakeMovies) FindByTitle(_ context.Context, title string, offset, limit int) ([]*entity.Movie, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return window(sortedValues(f.s.movies, func(m *entity.Movie) bool { return m.Title == title }), offset, limit), nil
}

func (f fakeMovies) FindByGenre(_ context.Context, genre string, offset, limit int) ([]*entity.Movie, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return window(sortedValues(f.s.movies, func(m *entity.Movie) bool { return m.Genre == genre }), offset, limit), nil
}

func (f fakeMovies) FindByUserID(_ context.Context, userID int64, offset, limit int) ([]*entity.Movie, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return window(sortedValues(f.s.movies, func(m *entity.Movie) bool { return m.UserID == userID }), offset, limit), nil
}

// ratings

type fakeRatings struct{ s *store }

func (f fakeRatings) Create(_ context.Context, r *entity.Rating) (*entity.Rating, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, other := range f.s.ratings {
		if other.UserID == r.UserID && other.MovieID == r.MovieID {
			return nil, repository.ErrDuplicate
		}
	}
	cp := *r
	cp.ID = f.s.id()
	cp.CreatedAt = time.Now()
	f.s.ratings[cp.ID] = &cp
	return clone(&cp), nil
}

func (f fakeRatings) FindByID(_ context.Context, id int64) (*entity.Rating, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return clone(f.s.ratings[id]), nil
}

func (f fakeRatings) FindAll(_ context.Context, offset, limit int) ([]*entity.Rating, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return window(sortedValues(f.s.ratings, nil), offset, limit), nil
}

func (f fakeRatings) FindByMovieID(_ context.Context, movieID int64, offset, limit int) ([]*entity.Rating, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return window(sortedValues(f.s.ratings, func(r *entity.Rating) bool { return r.MovieID == movieID }), offset, limit), nil
}

func (f fakeRatings) FindByUserID(_ context.Context, userID int64, offset, limit int) ([]*entity.Rating, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return window(sortedValues(f.s.ratings, func(r *entity.Rating) bool { return r.UserID == userID }), offset, limit), nil
}

func (f fakeRatings) FindByUserAndMovie(_ context.Context, userID, movieID int64) (*entity.Rating, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, r := range f.s.ratings {
		if r.UserID == userID && r.MovieID == movieID {
			return clone(r), nil
		}
	}
	return nil, nil
}

func (f fakeRatings) Update(_ context.Context, r *entity.Rating) (*entity.Rating, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.ratings[r.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	f.s.ratings[r.ID] = &cp
	return clone(&cp), nil
}

func (f fakeRatings) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.ratings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.s.ratings, id)
	return nil
}

func (f fakeRatings) FindAllValuesByMovieID(_ context.Context, movieID int64) ([]int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var values []int
	for _, r := range sortedValues(f.s.ratings, func(r *entity.Rating) bool { return r.MovieID == movieID }) {
		values = append(values, r.RatingValue)
	}
	return values, nil
}

// comments

type fakeComments struct{ s *store }

func (f fakeComments) Create(_ context.Context, c *entity.Comment) (*entity.Comment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.movies[c.MovieID]; !ok {
		return nil, repository.ErrReference
	}
	if c.ParentID != nil {
		if _, ok := f.s.comments[*c.ParentID]; !ok {
			return nil, repository.ErrReference
		}
	}
	cp := *c
	cp.ID = f.s.id()
	cp.CreatedAt = time.Now()
	cp.ParentID = clone(c.ParentID)
	f.s.comments[cp.ID] = &cp
	return clone(&cp), nil
}

func (f fakeComments) FindByID(_ context.Context, id int64) (*entity.Comment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return clone(f.s.comments[id]), nil
}

func (f fakeComments) FindByUserID(_ context.Context, userID int64, offset, limit int) ([]*entity.Comment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return window(sortedValues(f.s.comments, func(c *entity.Comment) bool { return c.UserID == userID }), offset, limit), nil
}

func (f fakeComments) FindReplies(_ context.Context, parentID int64, offset, limit int) ([]*entity.Comment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return window(sortedValues(f.s.comments, func(c *entity.Comment) bool {
		return c.ParentID != nil && *c.ParentID == parentID
	}), offset, limit), nil
}

func (f fakeComments) Update(_ context.Context, c *entity.Comment) (*entity.Comment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	stored, ok := f.s.comments[c.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	stored.Comment = c.Comment
	return clone(stored), nil
}

func (f fakeComments) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.comments[id]; !ok {
		return repository.ErrNotFound
	}
	f.s.deleteComment(id)
	return nil
}

func (s *store) deleteComment(id int64) {
	delete(s.comments, id)
	for cid, c := range s.comments {
		if c.ParentID != nil && *c.ParentID == id {
			s.deleteComment(cid)
		}
	}
}

func (f fakeComments) thread(c *entity.Comment) *entity.CommentThread {
	t := &entity.CommentThread{Comment: *c}
	if u := f.s.users[c.UserID]; u != nil {
		t.Author = *u
	}
	for _, other := range f.s.comments {
		if other.ParentID != nil && *other.ParentID == c.ID {
			t.Replies++
		}
	}
	return t
}

func (f fakeComments) threads(keep func(*entity.Comment) bool, offset, limit int) []*entity.CommentThread {
	var out []*entity.CommentThread
	for _, c := range window(sortedValues(f.s.comments, keep), offset, limit) {
		out = append(out, f.thread(c))
	}
	return out
}

func (f fakeComments) FindThreads(_ context.Context, offset, limit int) ([]*entity.CommentThread, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.threads(nil, offset, limit), nil
}

func (f fakeComments) FindThreadsByMovieID(_ context.Context, movieID int64, offset, limit int) ([]*entity.CommentThread, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.threads(func(c *entity.Comment) bool { return c.MovieID == movieID }, offset, limit), nil
}

func (f fakeComments) FindThreadByID(_ context.Context, id int64) (*entity.CommentThread, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.comments[id]
	if !ok {
		return nil, nil
	}
	return f.thread(clone(c)), nil
}

// sessions

type fakeSessions struct{ s *store }

func (f fakeSessions) Create(_ context.Context, sess *entity.Session) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *sess
	f.s.sessions[sess.Token] = &cp
	return nil
}

func (f fakeSessions) FindValidSession(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	sess, ok := f.s.sessions[token]
	if !ok || sess.RevokedAt != nil || !sess.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	return clone(sess), nil
}

func (f fakeSessions) Revoke(_ context.Context, token uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	sess, ok := f.s.sessions[token]
	if !ok || sess.RevokedAt != nil {
		return repository.ErrNotFound
	}
	now := time.Now()
	sess.RevokedAt = &now
	return nil
}

func (f fakeSessions) RevokeAllUserSessions(_ context.Context, userID int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	now := time.Now()
	for _, sess := range f.s.sessions {
		if sess.UserID == userID && sess.RevokedAt == nil {
			sess.RevokedAt = &now
		}
	}
	return nil
}

func (f fakeSessions) CleanExpiredSessions(_ context.Context) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for tok, sess := range f.s.sessions {
		if !sess.ExpiresAt.After(time.Now()) {
			delete(f.s.sessions, tok)
			n++
		}
	}
	return n, nil
}
