package feed

import (
	"context"
	"io"
	"strings"

	"github.com/verilab/verifeed/client"
	"github.com/verilab/verifeed/model"
	"github.com/verilab/verifeed/session"
)

// Submission carries one post-to-be from the upload form. Image is only
// consulted when Kind is KindImage.
type Submission struct {
	Kind    model.PostKind
	Title   string
	Content string

	ImageName string
	Image     io.Reader
}

// Submitter runs the two disjoint upload protocols: multipart for image
// posts, JSON for url and text posts. On failure the caller keeps the form
// populated for retry; nothing here retries automatically.
type Submitter struct {
	client  *client.Client
	session *session.Manager
}

func NewSubmitter(c *client.Client, sess *session.Manager) *Submitter {
	return &Submitter{client: c, session: sess}
}

// Submit validates the submission and dispatches it to the backend. All
// validation happens before any network call.
func (s *Submitter) Submit(ctx context.Context, sub Submission) error {
	sess := s.session.Current()
	if sess == nil {
		return &model.ValidationError{Message: "Please log in to upload posts."}
	}
	if strings.TrimSpace(sub.Title) == "" {
		return &model.ValidationError{Message: "Please give your post a title."}
	}

	// Image posts go to the dedicated endpoint which analyzes the file
	// and creates the post in one shot.
	if sub.Kind == model.KindImage {
		if sub.Image == nil {
			return &model.ValidationError{Message: "Please choose an image to upload."}
		}
		return s.client.UploadImagePost(ctx, sess.Token, sub.Title, sub.ImageName, sub.Image)
	}

	if strings.TrimSpace(sub.Content) == "" {
		return &model.ValidationError{Message: "There is nothing to verify yet."}
	}

	req := client.CreatePostRequest{
		UserId:  sess.User.Id,
		Title:   sub.Title,
		Content: sub.Content,
	}
	// For url submissions the content doubles as the url field; text
	// submissions carry a null url.
	if sub.Kind == model.KindUrl {
		url := sub.Content
		req.Url = &url
	}
	return s.client.CreatePost(ctx, sess.Token, req)
}
