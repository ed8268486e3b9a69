package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/verilab/verifeed/model"
	Logger "github.com/verilab/verifeed/utils/log"
)

const (
	// Shown when the token endpoint rejects the credentials but its
	// response body yields nothing displayable.
	genericBadCredentials = "You have entered an incorrect username or password."
	// Shown when the token endpoint is unreachable at the network level.
	genericLoginFailure = "An error occurred during login. Please try again."
)

// ExchangeToken trades email+password for a bearer token. The endpoint is an
// OAuth2 password form: the "username" field carries the email, because the
// backend authenticates by email.
func (c *Client) ExchangeToken(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	httpClient := NewDefaultHttpClient()
	res, err := httpClient.Post(ctx, c.Endpoint("/api/v1/auth/token"),
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		Logger.Log.Errorf("token exchange failed before reaching the backend: %v", err)
		return "", &model.AuthError{Message: genericLoginFailure}
	}
	defer res.Body.Close()

	if IsNon200HttpResponse(res) {
		return "", &model.AuthError{Message: loginErrorMessage(res)}
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		Logger.Log.Errorf("token response is not valid json: %v", err)
		return "", &model.AuthError{Message: genericLoginFailure}
	}
	if payload.AccessToken == "" {
		return "", &model.AuthError{Message: genericLoginFailure}
	}
	return payload.AccessToken, nil
}

// loginErrorMessage extracts a displayable message from a failed token
// response. A JSON body's "detail" field wins; a plain-text body is shown
// verbatim only when it looks like a credentials complaint.
func loginErrorMessage(res *http.Response) string {
	body, err := ioutil.ReadAll(res.Body)
	if err != nil || len(body) == 0 {
		return genericBadCredentials
	}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}

	text := string(body)
	for _, keyword := range []string{"incorrect", "password", "username"} {
		if strings.Contains(text, keyword) {
			return text
		}
	}
	return genericBadCredentials
}

// FetchProfile loads the authenticated user's profile with the given token.
func (c *Client) FetchProfile(ctx context.Context, token string) (model.User, error) {
	httpClient := NewBearerHttpClient(token)
	res, err := httpClient.Get(ctx, c.Endpoint("/api/v1/users/login"))
	if err != nil {
		return model.User{}, &model.FetchError{Op: "fetch profile", Err: err}
	}
	defer res.Body.Close()

	if IsNon200HttpResponse(res) {
		MaybeLogNon200HttpError(res)
		return model.User{}, &model.FetchError{Op: "fetch profile", Err: errors.Errorf("status %d", res.StatusCode)}
	}

	var raw model.RawUser
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return model.User{}, &model.FetchError{Op: "fetch profile", Err: errors.Wrap(err, "decode user")}
	}
	return raw.ToUser(), nil
}

// CreateAccount registers a new user. The password travels as given, the
// backend hashes it; the awkward field name is the backend's contract.
func (c *Client) CreateAccount(ctx context.Context, username, email, password string) error {
	payload, err := json.Marshal(map[string]string{
		"username":        username,
		"email":           email,
		"hashed_password": password,
	})
	if err != nil {
		return &model.SubmitError{Op: "create account", Err: err}
	}

	httpClient := NewDefaultHttpClient()
	res, err := httpClient.Post(ctx, c.Endpoint("/api/v1/users"),
		"application/json", bytes.NewReader(payload))
	if err != nil {
		return &model.SubmitError{Op: "create account", Err: err}
	}
	defer res.Body.Close()

	if IsNon200HttpResponse(res) {
		MaybeLogNon200HttpError(res)
		return &model.SubmitError{Op: "create account", Err: errors.Errorf("status %d", res.StatusCode)}
	}
	return nil
}
