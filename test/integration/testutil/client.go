//go:build integration

package testutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"portcall/pkg/client"
)

// Client wraps the service HTTP client with test-friendly methods.
type Client struct {
	http *client.HttpClient
}

func NewClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c := client.NewHttpClient(baseURL)
	// every test gets its own rate limit bucket
	c.Headers["X-Client-ID"] = t.Name()
	return &Client{http: c}
}

func (c *Client) GET(t *testing.T, path string) *client.Response {
	t.Helper()
	resp, err := c.http.GET(context.Background(), path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func (c *Client) POST(t *testing.T, path string, body any) *client.Response {
	t.Helper()
	resp, err := c.http.POST(context.Background(), path, body)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func (c *Client) WaitForHealthy(t *testing.T, maxWait time.Duration) {
	t.Helper()
	if err := c.http.WaitForHealthy(context.Background(), maxWait); err != nil {
		t.Fatal(err)
	}
	t.Log("Service is healthy")
}

func AssertStatusCode(t *testing.T, resp *client.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d. Body: %s", expected, resp.StatusCode, string(resp.Body))
	}
}

func AssertContains(t *testing.T, resp *client.Response, substr string) {
	t.Helper()
	if !strings.Contains(string(resp.Body), substr) {
		t.Fatalf("response body does not contain %q. Body: %s", substr, string(resp.Body))
	}
}
