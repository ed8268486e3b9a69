package model

// User is the authenticated profile as returned by the users endpoint. The
// bearer token is deliberately not part of this struct, it lives in the
// session store.
type User struct {
	Id        string
	Username  string
	Email     string
	AvatarUrl string
}

// RawUser is the wire shape of a user record.
type RawUser struct {
	Id        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarUrl string `json:"avatar"`
}

func (r *RawUser) ToUser() User {
	return User{
		Id:        r.Id,
		Username:  r.Username,
		Email:     r.Email,
		AvatarUrl: r.AvatarUrl,
	}
}

// Session couples the authenticated identity with its bearer token.
type Session struct {
	User  User
	Token string
}
