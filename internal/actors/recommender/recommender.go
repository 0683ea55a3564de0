package recommender

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Client calls the external recommendation service, which answers
// GET <url>?user_id=<id> with a JSON array of event ids, best first.
type Client struct {
	url    string
	client *http.Client
}

// ClientArgs are the mandatory arguments for the creation of a Client.
type ClientArgs struct {
	// URL is the recommendation endpoint.
	URL string

	// Timeout bounds every call.
	Timeout time.Duration
}

// NewClient creates a new recommendation client.
func NewClient(args ClientArgs) *Client {
	return &Client{url: args.URL, client: &http.Client{Timeout: args.Timeout}}
}

// Recommend returns the recommended event ids for the user.
func (c *Client) Recommend(ctx context.Context, userID uuid.UUID) ([]int64, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return nil, fmt.Errorf("parse recommendation url: %w", err)
	}
	q := u.Query()
	q.Set("user_id", userID.String())
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build recommendation request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recommendation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recommendation service returned %s", resp.Status)
	}

	ids := []int64{}
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		return nil, fmt.Errorf("decode recommendation response: %w", err)
	}
	return ids, nil
}
