// Package fixture provides a client for the remote demo dataset source.
package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/placekeeper/placekeeper/internal/model"
)

const (
	// ClientTimeout is the total request timeout.
	ClientTimeout = 30 * time.Second
	// DialTimeout is the connection timeout.
	DialTimeout = 10 * time.Second
	// ResponseHeaderTimeout is time to wait for response headers.
	ResponseHeaderTimeout = 15 * time.Second
)

// Client fetches the users, posts, and comments fixture datasets from
// the remote source.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a fixture client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: ClientTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   DialTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				ResponseHeaderTimeout: ResponseHeaderTimeout,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
			},
		},
	}
}

// Dataset holds the three related fixture collections.
type Dataset struct {
	Users    []model.User
	Posts    []model.Post
	Comments []model.Comment
}

// FetchUsers fetches the users dataset.
func (c *Client) FetchUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.fetch(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FetchPosts fetches the posts dataset.
func (c *Client) FetchPosts(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := c.fetch(ctx, "/posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// FetchComments fetches the comments dataset.
func (c *Client) FetchComments(ctx context.Context) ([]model.Comment, error) {
	var comments []model.Comment
	if err := c.fetch(ctx, "/comments", &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// FetchAll fetches the three datasets concurrently.
// Any single fetch failure fails the whole call.
func (c *Client) FetchAll(ctx context.Context) (*Dataset, error) {
	var ds Dataset

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		users, err := c.FetchUsers(ctx)
		if err != nil {
			return err
		}
		ds.Users = users
		return nil
	})

	g.Go(func() error {
		posts, err := c.FetchPosts(ctx)
		if err != nil {
			return err
		}
		ds.Posts = posts
		return nil
	})

	g.Go(func() error {
		comments, err := c.FetchComments(ctx)
		if err != nil {
			return err
		}
		ds.Comments = comments
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ds, nil
}

// fetch performs a GET against path and decodes the JSON response into dest.
func (c *Client) fetch(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build fixture request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Placekeeper/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fixture fetch %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fixture fetch %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode fixture response %s: %w", path, err)
	}

	return nil
}
