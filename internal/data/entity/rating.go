package entity

type Rating struct {
	Base
	RatingValue int   `db:"rating_value"` // 1-10
	UserID      int64 `db:"user_id"`
	MovieID     int64 `db:"movie_id"`
}

type RatingPatch struct {
	RatingValue *int
}

func (p RatingPatch) IsEmpty() bool {
	return p.RatingValue == nil
}

func (p RatingPatch) Apply(r *Rating) {
	if p.RatingValue != nil {
		r.RatingValue = *p.RatingValue
	}
}
