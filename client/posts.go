package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"

	"github.com/pkg/errors"
	"github.com/verilab/verifeed/model"
)

// CreatePostRequest is the JSON protocol for url and text submissions.
// Likes and dislikes are always seeded to zero at creation.
type CreatePostRequest struct {
	UserId   string  `json:"user_id"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Url      *string `json:"url"`
	Likes    int     `json:"likes"`
	Dislikes int     `json:"dislikes"`
}

// CreatePost submits a url or text post. The server analyzes it
// asynchronously; verdict and score show up on a later feed fetch.
func (c *Client) CreatePost(ctx context.Context, token string, req CreatePostRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return &model.SubmitError{Op: "create post", Err: err}
	}

	httpClient := NewBearerHttpClient(token)
	res, err := httpClient.Post(ctx, c.Endpoint("/api/v1/posts"),
		"application/json", bytes.NewReader(payload))
	if err != nil {
		return &model.SubmitError{Op: "create post", Err: err}
	}
	defer res.Body.Close()

	if IsNon200HttpResponse(res) {
		MaybeLogNon200HttpError(res)
		return &model.SubmitError{Op: "create post", Err: errors.Errorf("status %d", res.StatusCode)}
	}
	return nil
}

// UploadImagePost sends an image file plus title as a multipart form. The
// endpoint analyzes the image and creates the post atomically, so callers
// must not follow up with CreatePost.
func (c *Client) UploadImagePost(ctx context.Context, token, title, filename string, file io.Reader) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return &model.SubmitError{Op: "upload image post", Err: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return &model.SubmitError{Op: "upload image post", Err: err}
	}
	if err := writer.WriteField("title", title); err != nil {
		return &model.SubmitError{Op: "upload image post", Err: err}
	}
	if err := writer.Close(); err != nil {
		return &model.SubmitError{Op: "upload image post", Err: err}
	}

	httpClient := NewBearerHttpClient(token)
	res, err := httpClient.Post(ctx, c.Endpoint("/api/v1/posts/upload_image_post"),
		writer.FormDataContentType(), &buf)
	if err != nil {
		return &model.SubmitError{Op: "upload image post", Err: err}
	}
	defer res.Body.Close()

	if IsNon200HttpResponse(res) {
		MaybeLogNon200HttpError(res)
		return &model.SubmitError{Op: "upload image post", Err: errors.Errorf("status %d", res.StatusCode)}
	}
	return nil
}

// ListPosts fetches the full community feed in server order.
func (c *Client) ListPosts(ctx context.Context, token string) ([]model.RawPost, error) {
	return c.listPosts(ctx, token, "/api/v1/posts", "list posts")
}

// ListOwnPosts fetches the authenticated user's own submissions.
func (c *Client) ListOwnPosts(ctx context.Context, token string) ([]model.RawPost, error) {
	return c.listPosts(ctx, token, "/api/v1/posts/user/me", "list own posts")
}

func (c *Client) listPosts(ctx context.Context, token, path, op string) ([]model.RawPost, error) {
	httpClient := NewBearerHttpClient(token)
	res, err := httpClient.Get(ctx, c.Endpoint(path))
	if err != nil {
		return nil, &model.FetchError{Op: op, Err: err}
	}
	defer res.Body.Close()

	if IsNon200HttpResponse(res) {
		MaybeLogNon200HttpError(res)
		return nil, &model.FetchError{Op: op, Err: errors.Errorf("status %d", res.StatusCode)}
	}

	var raw []model.RawPost
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, &model.FetchError{Op: op, Err: errors.Wrap(err, "decode posts")}
	}
	return raw, nil
}
