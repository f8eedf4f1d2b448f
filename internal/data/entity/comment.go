package entity

type Comment struct {
	Base
	Comment  string `db:"comment"`
	UserID   int64  `db:"user_id"`
	MovieID  int64  `db:"movie_id"`
	ParentID *int64 `db:"parent_id"` // nil for top-level comments
}

// CommentThread is a comment joined with its author and the number of direct replies.
type CommentThread struct {
	Comment
	Author  User
	Replies int64 `db:"replies"`
}

type CommentPatch struct {
	Comment *string
}

func (p CommentPatch) IsEmpty() bool {
	return p.Comment == nil
}

func (p CommentPatch) Apply(c *Comment) {
	if p.Comment != nil {
		c.Comment = *p.Comment
	}
}
