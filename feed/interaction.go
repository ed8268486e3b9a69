package feed

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/verilab/verifeed/model"
	"github.com/verilab/verifeed/session"
	Logger "github.com/verilab/verifeed/utils/log"
)

// UpdateFunc receives a snapshot of the mutated post after every optimistic
// counter change, so the feed owner can reconcile its list.
type UpdateFunc func(model.Post)

// Interaction is the per-post local state machine for likes, dislikes and
// the session-local comment thread. Nothing in here talks to the network;
// a feed refresh discards all of it.
type Interaction struct {
	post    model.Post
	session *session.Manager

	onUpdate        UpdateFunc
	commentsVisible bool
}

func NewInteraction(post model.Post, sess *session.Manager, onUpdate UpdateFunc) *Interaction {
	return &Interaction{post: post, session: sess, onUpdate: onUpdate}
}

// Post returns a deep snapshot of the current local state.
func (in *Interaction) Post() model.Post {
	return in.snapshot()
}

func (in *Interaction) snapshot() model.Post {
	var dup model.Post
	if err := copier.CopyWithOption(&dup, &in.post, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on type mismatch, which cannot happen for
		// identical types; log and fall back to the shallow value.
		Logger.Log.Errorf("fail to snapshot post %s: %v", in.post.Id, err)
		return in.post
	}
	return dup
}

func (in *Interaction) propagate() {
	if in.onUpdate != nil {
		in.onUpdate(in.snapshot())
	}
}

// Like bumps the local like counter by one and propagates the mutated post.
// There is no already-liked guard: repeat likes keep counting.
func (in *Interaction) Like() {
	in.post.Likes++
	in.propagate()
}

// Dislike bumps the independent dislike counter by one and propagates.
func (in *Interaction) Dislike() {
	in.post.Dislikes++
	in.propagate()
}

// AddComment appends a session-local comment labeled "Just now". Whitespace
// comments and comments without an active session are dropped. Nothing is
// sent to the backend; the comment lives until the next feed refresh.
func (in *Interaction) AddComment(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	sess := in.session.Current()
	if sess == nil {
		return
	}
	in.post.Comments = append(in.post.Comments, model.Comment{
		Id:           uuid.New().String(),
		AuthorName:   sess.User.Username,
		AuthorAvatar: sess.User.AvatarUrl,
		Text:         text,
		Timestamp:    "Just now",
	})
}

// Comments returns the local comment thread in append order.
func (in *Interaction) Comments() []model.Comment {
	return in.post.Comments
}

// ToggleCommentsVisible flips the comment section and returns the new
// visibility. Pure view state, no data effect.
func (in *Interaction) ToggleCommentsVisible() bool {
	in.commentsVisible = !in.commentsVisible
	return in.commentsVisible
}

func (in *Interaction) CommentsVisible() bool {
	return in.commentsVisible
}
