package entity

type User struct {
	Base
	Email        string `db:"email"`
	Username     string `db:"username"`
	FullName     string `db:"full_name"`
	PasswordHash string `db:"password"`
}

// UserPatch carries the mutable user fields; nil slots are left untouched.
// Password holds an already hashed secret.
type UserPatch struct {
	Email        *string
	Username     *string
	FullName     *string
	PasswordHash *string
}

func (p UserPatch) IsEmpty() bool {
	return p.Email == nil && p.Username == nil && p.FullName == nil && p.PasswordHash == nil
}

func (p UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
}
