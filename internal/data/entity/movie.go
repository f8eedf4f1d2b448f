package entity

type Movie struct {
	Base
	Title       string  `db:"title"`
	Genre       string  `db:"genre"`
	Description *string `db:"description"`
	ReleaseYear *int    `db:"release_year"`
	UserID      int64   `db:"user_id"`
}

type MoviePatch struct {
	Title       *string
	Genre       *string
	Description *string
	ReleaseYear *int
}

func (p MoviePatch) IsEmpty() bool {
	return p.Title == nil && p.Genre == nil && p.Description == nil && p.ReleaseYear == nil
}

func (p MoviePatch) Apply(m *Movie) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Genre != nil {
		m.Genre = *p.Genre
	}
	// An empty description clears the column.
	if p.Description != nil {
		if desc := *p.Description; desc != "" {
			m.Description = &desc
		} else {
			m.Description = nil
		}
	}
	if p.ReleaseYear != nil {
		year := *p.ReleaseYear
		m.ReleaseYear = &year
	}
}
