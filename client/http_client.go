package client

import (
	"context"
	"io"
	"io/ioutil"
	"net/http"

	Logger "github.com/verilab/verifeed/utils/log"
)

// HttpClient is a thin wrapper around net/http that carries a fixed header
// set (the bearer token among them) on every request. Calls are not retried
// and carry no timeout: an issued request runs to completion or failure.
type HttpClient struct {
	header http.Header

	client *http.Client
}

func NewDefaultHttpClient() *HttpClient {
	return &HttpClient{header: http.Header{}, client: &http.Client{}}
}

// NewBearerHttpClient returns a client that authenticates every request with
// the given token.
func NewBearerHttpClient(token string) *HttpClient {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	return &HttpClient{header: header, client: &http.Client{}}
}

func (c *HttpClient) do(ctx context.Context, method, uri, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range c.header {
		req.Header[k] = vs
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return c.client.Do(req)
}

func (c *HttpClient) Get(ctx context.Context, uri string) (*http.Response, error) {
	return c.do(ctx, "GET", uri, "", nil)
}

func (c *HttpClient) Post(ctx context.Context, uri string, contentType string, body io.Reader) (*http.Response, error) {
	return c.do(ctx, "POST", uri, contentType, body)
}

// Log http response if the error code is not 2XX
func MaybeLogNon200HttpError(res *http.Response) {
	if IsNon200HttpResponse(res) {
		Logger.Log.Errorf("non-200 http code: %d", res.StatusCode)
		LogHttpResponseBody(res)
	}
}

func IsNon200HttpResponse(res *http.Response) bool {
	return res.StatusCode >= 300
}

func LogHttpResponseBody(res *http.Response) {
	body, err := ioutil.ReadAll(res.Body)
	if err == nil {
		Logger.Log.Errorln("response body is: ", string(body))
	}
}
