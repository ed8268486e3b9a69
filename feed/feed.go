// Package feed implements the community feed workflow: a fetch-once-per-
// activation synchronizer that classifies every server record, the
// submission paths for new posts, and the per-post optimistic interaction
// state.
package feed

import (
	"context"

	"github.com/verilab/verifeed/classify"
	"github.com/verilab/verifeed/client"
	"github.com/verilab/verifeed/model"
	"github.com/verilab/verifeed/session"
	Logger "github.com/verilab/verifeed/utils/log"
)

// State tracks one refresh cycle of the feed view.
type State int

const (
	Idle State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Synchronizer owns the canonical in-memory post list of the feed view.
// Refresh replaces the whole list; Reconcile replaces single posts that the
// interaction engine mutated. There is no polling and no cache: the view
// refreshes once each time it becomes active.
type Synchronizer struct {
	client  *client.Client
	session *session.Manager

	state   State
	posts   []model.Post
	lastErr error
}

func NewSynchronizer(c *client.Client, sess *session.Manager) *Synchronizer {
	return &Synchronizer{client: c, session: sess, state: Idle}
}

func (s *Synchronizer) State() State { return s.state }

// Err returns the failure of the last refresh, nil unless state is Failed.
func (s *Synchronizer) Err() error { return s.lastErr }

// Posts returns the current list in server order. Callers must treat the
// slice as read-only; per-post mutation goes through Reconcile.
func (s *Synchronizer) Posts() []model.Post { return s.posts }

// Refresh fetches the full post collection and classifies every record. A
// missing or expired token is not special-cased: the backend rejects the
// request and that surfaces as a generic fetch failure.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	s.state = Loading
	s.lastErr = nil

	var token string
	if sess := s.session.Current(); sess != nil {
		token = sess.Token
	}

	raw, err := s.client.ListPosts(ctx, token)
	if err != nil {
		Logger.Log.Errorf("feed refresh failed: %v", err)
		s.state = Failed
		s.lastErr = err
		return err
	}

	posts := make([]model.Post, 0, len(raw))
	for i := range raw {
		posts = append(posts, classify.Apply(&raw[i]))
	}
	s.posts = posts
	s.state = Loaded
	return nil
}

// Reconcile folds an optimistically mutated post back into the list,
// replacing by id, last writer wins. Unknown ids are dropped: the post was
// already displaced by a full refresh and its local state is discarded.
func (s *Synchronizer) Reconcile(post model.Post) {
	for i := range s.posts {
		if s.posts[i].Id == post.Id {
			s.posts[i] = post
			return
		}
	}
}
