package model

// Comment is a session-local reply on a post. The backend does not return
// comments yet, so every comment lives only until the next feed refresh.
type Comment struct {
	Id           string
	AuthorName   string
	AuthorAvatar string
	Text         string
	Timestamp    string
}
