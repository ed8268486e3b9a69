// Package profile loads the authenticated user's own submissions and
// derives the aggregate counts shown on the profile view.
package profile

import (
	"context"
	"time"

	"github.com/verilab/verifeed/client"
	"github.com/verilab/verifeed/model"
	"github.com/verilab/verifeed/session"
	"github.com/verilab/verifeed/utils"
	Logger "github.com/verilab/verifeed/utils/log"
)

// UserPost is one row of the profile history. Url stays raw here (no
// classifier pass) because the aggregates are defined on url presence.
type UserPost struct {
	Id               string
	Title            string
	Content          string
	Url              string
	Likes            int
	Dislikes         int
	CreatedAt        time.Time
	Verdict          *model.Verdict
	CredibilityScore *float64
}

// DisplayContent mirrors the history row rendering: content, else url,
// else a placeholder.
func (p *UserPost) DisplayContent() string {
	if p.Content != "" {
		return p.Content
	}
	if p.Url != "" {
		return p.Url
	}
	return "No content"
}

// DateLabel renders the submission date relative to now.
func (p *UserPost) DateLabel(now time.Time) string {
	return utils.RelativeLabel(p.CreatedAt, now)
}

// Stats are recomputed from the fetched list on every render, never
// maintained incrementally.
type Stats struct {
	Total    int
	Liked    int
	WithUrl  int
	TextOnly int
}

// Aggregator fetches own posts once per profile-view activation.
type Aggregator struct {
	client  *client.Client
	session *session.Manager
}

func NewAggregator(c *client.Client, sess *session.Manager) *Aggregator {
	return &Aggregator{client: c, session: sess}
}

// LoadOwnPosts fetches the current user's submissions in server order. A
// fetch failure is logged and surfaced; the view shows an empty history.
func (a *Aggregator) LoadOwnPosts(ctx context.Context) ([]UserPost, error) {
	var token string
	if sess := a.session.Current(); sess != nil {
		token = sess.Token
	}

	raw, err := a.client.ListOwnPosts(ctx, token)
	if err != nil {
		Logger.Log.Errorf("failed to fetch user posts: %v", err)
		return nil, err
	}

	posts := make([]UserPost, 0, len(raw))
	for i := range raw {
		r := &raw[i]
		p := UserPost{
			Title:   r.Title,
			Content: r.Content,
			Url:     r.Url,
			Verdict: r.DeriveVerdict(),
		}
		base := r.ToPost()
		p.Id = base.Id
		p.Likes = base.Likes
		p.Dislikes = base.Dislikes
		p.CreatedAt = base.CreatedAt
		p.CredibilityScore = base.CredibilityScore
		posts = append(posts, p)
	}
	return posts, nil
}

// ComputeStats derives the aggregate counts from a fetched list.
func ComputeStats(posts []UserPost) Stats {
	stats := Stats{Total: len(posts)}
	for i := range posts {
		if posts[i].Likes > 0 {
			stats.Liked++
		}
		if posts[i].Url != "" {
			stats.WithUrl++
		} else {
			stats.TextOnly++
		}
	}
	return stats
}
