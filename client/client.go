// Package client implements the typed REST surface of the verification
// backend. Every method converts transport failures into the error taxonomy
// in package model; nothing here retries, caches or cancels on its own.
package client

import (
	"os"
	"strings"
)

const DefaultBaseUrl = "http://localhost:8000"

// Client talks to one backend instance.
type Client struct {
	baseUrl string
}

func NewClient(baseUrl string) *Client {
	return &Client{baseUrl: strings.TrimRight(baseUrl, "/")}
}

// NewClientFromEnv picks the backend base url from VERIFEED_BACKEND_URL,
// falling back to the localhost default.
func NewClientFromEnv() *Client {
	base := os.Getenv("VERIFEED_BACKEND_URL")
	if base == "" {
		base = DefaultBaseUrl
	}
	return NewClient(base)
}

// Endpoint joins the base url with an api path, normalizing the leading
// slash to avoid doubled separators.
func (c *Client) Endpoint(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseUrl + path
}
